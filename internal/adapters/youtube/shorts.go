package youtube

import (
	"math"
	"regexp"
	"sort"
	"strconv"
)

// Shorts extraction scores candidate clip segments from timestamps viewers
// drop in comments. A timestamp mentioned by several comments, or by highly
// liked comments, is a strong hint that the surrounding seconds make a good
// short. Everything here is plain arithmetic over the comment list.

const (
	// defaultClipSeconds is the clip length when the caller does not choose one.
	defaultClipSeconds = 45
	// mentionWindowSeconds groups timestamps this close together into one candidate.
	mentionWindowSeconds = 10
)

// Segment is a candidate short with its supporting evidence.
type Segment struct {
	StartSeconds int     `json:"start_seconds"`
	EndSeconds   int     `json:"end_seconds"`
	Mentions     int     `json:"mentions"`
	CommentLikes int64   `json:"comment_likes"`
	Confidence   float64 `json:"confidence"`
}

// timestampRE matches mm:ss and h:mm:ss in free comment text.
var timestampRE = regexp.MustCompile(`(?:^|[^\d:])((?:\d{1,2}:)?\d{1,2}:\d{2})(?:[^\d:]|$)`)

// parseTimestamps extracts every timestamp in text as seconds.
func parseTimestamps(text string) []int {
	var out []int
	for _, m := range timestampRE.FindAllStringSubmatch(text, -1) {
		if secs, ok := clockToSeconds(m[1]); ok {
			out = append(out, secs)
		}
	}
	return out
}

func clockToSeconds(clock string) (int, bool) {
	parts := splitClock(clock)
	secs := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		secs = secs*60 + n
	}
	// seconds field must be a real clock value
	if last := parts[len(parts)-1]; len(last) == 2 {
		if n, _ := strconv.Atoi(last); n >= 60 {
			return 0, false
		}
	}
	return secs, true
}

func splitClock(clock string) []string {
	var parts []string
	start := 0
	for i, r := range clock {
		if r == ':' {
			parts = append(parts, clock[start:i])
			start = i + 1
		}
	}
	return append(parts, clock[start:])
}

// isoDurationRE matches the subset of ISO-8601 durations YouTube emits (PT#H#M#S).
var isoDurationRE = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration converts an ISO-8601 video duration into seconds,
// returning 0 for anything it cannot parse.
func parseISODuration(s string) int {
	m := isoDurationRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	secs := 0
	for i, mult := range []int{3600, 60, 1} {
		if m[i+1] != "" {
			n, _ := strconv.Atoi(m[i+1])
			secs += n * mult
		}
	}
	return secs
}

type cluster struct {
	start    int
	mentions int
	likes    int64
}

// extractSegments turns comment timestamps into scored clip candidates.
// Timestamps past the video duration are discarded, nearby mentions are
// merged, and the result is ordered by score with confidence normalized to
// the strongest candidate.
func extractSegments(durationSeconds int, comments []Comment, clipSeconds, maxSegments int) []Segment {
	if clipSeconds <= 0 {
		clipSeconds = defaultClipSeconds
	}
	if maxSegments <= 0 {
		maxSegments = 3
	}

	var clusters []cluster
	for _, c := range comments {
		for _, ts := range parseTimestamps(c.Text) {
			if durationSeconds > 0 && ts >= durationSeconds {
				continue
			}
			merged := false
			for i := range clusters {
				if abs(clusters[i].start-ts) <= mentionWindowSeconds {
					clusters[i].mentions++
					clusters[i].likes += c.Likes
					if ts < clusters[i].start {
						clusters[i].start = ts
					}
					merged = true
					break
				}
			}
			if !merged {
				clusters = append(clusters, cluster{start: ts, mentions: 1, likes: c.Likes})
			}
		}
	}
	if len(clusters) == 0 {
		return []Segment{}
	}

	score := func(cl cluster) float64 {
		return float64(cl.mentions)*2 + math.Log1p(float64(cl.likes))
	}
	sort.Slice(clusters, func(i, j int) bool {
		si, sj := score(clusters[i]), score(clusters[j])
		if si != sj {
			return si > sj
		}
		return clusters[i].start < clusters[j].start
	})
	if len(clusters) > maxSegments {
		clusters = clusters[:maxSegments]
	}

	best := score(clusters[0])
	segments := make([]Segment, 0, len(clusters))
	for _, cl := range clusters {
		end := cl.start + clipSeconds
		if durationSeconds > 0 && end > durationSeconds {
			end = durationSeconds
		}
		segments = append(segments, Segment{
			StartSeconds: cl.start,
			EndSeconds:   end,
			Mentions:     cl.mentions,
			CommentLikes: cl.likes,
			Confidence:   math.Round(score(cl)/best*100) / 100,
		})
	}
	return segments
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
