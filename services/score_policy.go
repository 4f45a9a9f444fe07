package services

import (
	"regexp"
	"strconv"
)

const (
	ideaScoreMax        = 10
	applicationScoreMax = 100
)

var (
	labelledScore = regexp.MustCompile(`(?i)\bscore\s*[:=]\s*(\d{1,3})\b`)
	outOfTen      = regexp.MustCompile(`\b(\d{1,2})\s*/\s*10\b`)
	outOfHundred  = regexp.MustCompile(`\b(\d{1,3})\s*/\s*100\b`)
)

// ScorePolicy decides the score recorded with an AI review. By default the
// configured fixed score is used; with ParseFromResponse a score found in the
// response text wins.
type ScorePolicy struct {
	IdeaDefault        int
	ApplicationDefault int
	ParseFromResponse  bool
}

// DefaultScorePolicy matches the historical fixed scores
func DefaultScorePolicy() ScorePolicy {
	return ScorePolicy{IdeaDefault: 7, ApplicationDefault: 75}
}

// IdeaScore returns a score in [0,10]
func (p ScorePolicy) IdeaScore(response string) int {
	if p.ParseFromResponse {
		if n, ok := firstMatch(response, outOfTen, labelledScore); ok {
			return clamp(n, ideaScoreMax)
		}
	}
	return clamp(p.IdeaDefault, ideaScoreMax)
}

// ApplicationScore returns a score in [0,100]
func (p ScorePolicy) ApplicationScore(response string) int {
	if p.ParseFromResponse {
		if n, ok := firstMatch(response, outOfHundred, labelledScore); ok {
			return clamp(n, applicationScoreMax)
		}
	}
	return clamp(p.ApplicationDefault, applicationScoreMax)
}

func firstMatch(text string, patterns ...*regexp.Regexp) (int, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

func clamp(n, upper int) int {
	return min(max(n, 0), upper)
}
