package services

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"scamshield/internal/domain/models"
)

// Scoring policy constants.
const (
	longNumberBonus = 6
	maxURLScoreSum  = 40
	linkOnlyFloor   = 20

	compressionKnee  = 90
	compressionSlope = 0.5

	thresholdMedium   = 35
	thresholdHigh     = 65
	thresholdCritical = 85
)

// Analyzer runs the full rule-based risk assessment. Analysis is
// deterministic: the same text always produces the same result.
type Analyzer struct {
	logger zerolog.Logger
}

func NewAnalyzer(logger zerolog.Logger) *Analyzer {
	return &Analyzer{logger: logger.With().Str("component", "analyzer").Logger()}
}

// Analyze scores a message. It never returns nil and never fails;
// empty or whitespace-only input yields a zero-score low-risk result.
// reqCtx carries optional request metadata and does not affect the
// verdict.
func (a *Analyzer) Analyze(text string, reqCtx map[string]any) *models.AnalysisResult {
	_ = reqCtx

	normalized := NormalizeText(text)
	if normalized == "" {
		return a.emptyResult()
	}

	sentences := splitSentences(normalized)
	ents := ExtractEntities(normalized)
	hits := evaluateRules(sentences)

	suspicious := make([]models.SuspiciousURL, 0, len(ents.URLs))
	urlSum := 0
	for _, u := range ents.URLs {
		su := AnalyzeURL(u)
		suspicious = append(suspicious, su)
		urlSum += su.Score
	}
	if urlSum > maxURLScoreSum {
		urlSum = maxURLScoreSum
	}

	combos, comboBonus, comboFloor := evaluateCombos(hits)

	raw := comboBonus + urlSum
	for _, h := range hits {
		raw += h.rule.Weight
	}
	if len(ents.LongNumbers) > 0 {
		raw += longNumberBonus
	}

	types := scamTypesOf(hits)
	// A URL alone must floor the score and carry the phishing tag.
	// The current link rule already fires on any URL, so this branch
	// only takes effect if the rule table stops covering bare links.
	if len(hits) == 0 && urlSum > 0 {
		if raw < linkOnlyFloor {
			raw = linkOnlyFloor
		}
		types = append(types, models.ScamTypePhishingLink)
	}
	if raw < comboFloor {
		raw = comboFloor
	}

	score := compressScore(raw)
	level := scoreToLevel(score)
	level = applyLevelGates(level, hits)

	triggered := make([]models.RuleHit, 0, len(hits)+len(combos))
	for _, h := range hits {
		triggered = append(triggered, models.RuleHit{
			Name:              h.rule.Name,
			Score:             h.rule.Weight,
			EvidenceSentences: h.evidence,
		})
	}
	triggered = append(triggered, combos...)
	sort.SliceStable(triggered, func(i, j int) bool {
		return triggered[i].Score > triggered[j].Score
	})

	sc := pickScenario(hits, normalized)

	a.logger.Debug().
		Int("score", score).
		Str("level", string(level)).
		Int("rules_fired", len(hits)).
		Int("urls", len(ents.URLs)).
		Msg("analysis complete")

	return &models.AnalysisResult{
		RiskScore:          score,
		RiskLevel:          level,
		Stage:              classifyStage(normalized, ents, hits),
		ScamTypes:          types,
		TriggeredRules:     triggered,
		Explanation:        buildExplanation(level, triggered),
		RecommendedActions: recommendedActions(level, types),
		ReplyTemplates:     replyTemplatesFor(sc, level),
		SuspiciousURLs:     suspicious,
		Entities:           ents,
	}
}

func (a *Analyzer) emptyResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		RiskScore:          0,
		RiskLevel:          models.RiskLow,
		Stage:              models.StageTrustBuilding,
		ScamTypes:          []models.ScamType{},
		TriggeredRules:     []models.RuleHit{},
		Explanation:        buildExplanation(models.RiskLow, nil),
		RecommendedActions: recommendedActions(models.RiskLow, nil),
		ReplyTemplates:     replyTemplatesFor(scenarioGeneric, models.RiskLow),
		SuspiciousURLs:     []models.SuspiciousURL{},
		Entities: models.Entities{
			URLs:        []string{},
			Phones:      []string{},
			Emails:      []string{},
			LongNumbers: []string{},
		},
	}
}

// scamTypesOf collects the category tags of fired rules, de-duplicated
// in rule-table order.
func scamTypesOf(hits []ruleHit) []models.ScamType {
	types := []models.ScamType{}
	seen := make(map[models.ScamType]bool)
	for _, h := range hits {
		for _, t := range h.rule.Types {
			if seen[t] {
				continue
			}
			seen[t] = true
			types = append(types, t)
		}
	}
	return types
}

// compressScore maps the unbounded raw score onto [0,100]. Scores past
// the knee grow at half rate so stacked signals saturate smoothly
// instead of all pinning at 100.
func compressScore(raw int) int {
	if raw < 0 {
		return 0
	}
	if raw <= compressionKnee {
		return raw
	}
	score := int(math.Round(compressionKnee + float64(raw-compressionKnee)*compressionSlope))
	if score > 100 {
		return 100
	}
	return score
}

func scoreToLevel(score int) models.RiskLevel {
	switch {
	case score >= thresholdCritical:
		return models.RiskCritical
	case score >= thresholdHigh:
		return models.RiskHigh
	case score >= thresholdMedium:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
