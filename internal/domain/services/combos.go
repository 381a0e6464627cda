package services

import "scamshield/internal/domain/models"

// comboRule fires when every listed rule fired in the same analysis.
// Bonus adds to the raw score; Floor lifts the raw score to at least
// that value before compression.
type comboRule struct {
	Name    string
	RuleIDs []string
	Bonus   int
	Floor   int
}

var comboRules = []comboRule{
	{
		Name:    "高危組合：匯款 + 驗證碼 + 急迫",
		RuleIDs: []string{ruleTransfer, ruleOTP, ruleUrgency},
		Bonus:   40,
		Floor:   95,
	},
	{
		Name:    "高危組合：假冒權威/客服 + 索取驗證碼",
		RuleIDs: []string{ruleImpersonation, ruleOTP},
		Bonus:   25,
		Floor:   85,
	},
	{
		Name:    "高危組合：連結/下載App + 索取驗證碼",
		RuleIDs: []string{ruleLink, ruleOTP},
		Bonus:   20,
		Floor:   80,
	},
}

// levelGate forces a minimum final level when its rules fired,
// independent of the numeric score.
type levelGate struct {
	RuleIDs []string
	Minimum models.RiskLevel
}

var levelGates = []levelGate{
	{RuleIDs: []string{ruleOTP}, Minimum: models.RiskCritical},
	{RuleIDs: []string{ruleTransfer, ruleUrgency}, Minimum: models.RiskHigh},
}

// evaluateCombos matches combo rules against the fired-rule set and
// builds one hit per satisfied combo, pooling evidence from the
// member rules in rule-table order.
func evaluateCombos(hits []ruleHit) (combos []models.RuleHit, bonus, floor int) {
	fired := make(map[string]ruleHit, len(hits))
	for _, h := range hits {
		fired[h.rule.ID] = h
	}

	for _, c := range comboRules {
		all := true
		for _, id := range c.RuleIDs {
			if _, ok := fired[id]; !ok {
				all = false
				break
			}
		}
		if !all {
			continue
		}

		var ev []string
		seen := make(map[string]bool)
		for _, h := range hits {
			if !containsID(c.RuleIDs, h.rule.ID) {
				continue
			}
			for _, s := range h.evidence {
				if seen[s] || len(ev) == maxComboEvidence {
					continue
				}
				seen[s] = true
				ev = append(ev, s)
			}
		}

		combos = append(combos, models.RuleHit{
			Name:              c.Name,
			Score:             c.Bonus,
			EvidenceSentences: ev,
		})
		bonus += c.Bonus
		if c.Floor > floor {
			floor = c.Floor
		}
	}
	return combos, bonus, floor
}

// applyLevelGates lifts the level to each gate's minimum when all of
// the gate's rules fired.
func applyLevelGates(level models.RiskLevel, hits []ruleHit) models.RiskLevel {
	fired := make(map[string]bool, len(hits))
	for _, h := range hits {
		fired[h.rule.ID] = true
	}
	for _, g := range levelGates {
		all := true
		for _, id := range g.RuleIDs {
			if !fired[id] {
				all = false
				break
			}
		}
		if all {
			level = models.MaxLevel(level, g.Minimum)
		}
	}
	return level
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
