// Package risk scores a symptom checklist for signs of PCOS or thyroid conditions.
//
// Scoring is a fixed rule set over a fixed catalogue. It is a prompt to talk to a clinician,
// not a diagnosis, and every Assessment carries a disclaimer saying so.
package risk

// Verdict is the single headline outcome of an assessment.
type Verdict string

const (
	VerdictPotentialPCOS    Verdict = "PotentialPCOS"
	VerdictPotentialThyroid Verdict = "PotentialThyroid"
	VerdictMonitor          Verdict = "Monitor"
)

// Thresholds are fixed calibration constants of the checklist.
const (
	PCOSThreshold    = 3
	ThyroidThreshold = 2
)

// Disclaimer accompanies every assessment.
const Disclaimer = "Not a medical diagnosis. Consult a professional."

const (
	findingPCOS    = "Symptoms suggest potential PCOS."
	findingThyroid = "Symptoms suggest potential thyroid condition."
	findingMonitor = "Monitoring symptoms is good."
)

// Advice is a snippet attached to one selected symptom.
type Advice struct {
	Symptom string `json:"symptom"`
	Text    string `json:"text"`
}

// Assessment is the result of scoring a checklist.
type Assessment struct {
	PCOSScore    int      `json:"pcos_score"`
	ThyroidScore int      `json:"thyroid_score"`
	Verdict      Verdict  `json:"verdict"`
	Findings     []string `json:"findings"`
	Advice       []Advice `json:"advice"`
	Unknown      []string `json:"unknown,omitempty"`
	Disclaimer   string   `json:"disclaimer"`
}

// Assess scores the selected symptom names.
//
// Selections are treated as a set: repeating a name does not raise a score. Names outside
// the catalogue are reported in Unknown and otherwise ignored.
func Assess(selected []string) (Assessment, error) {
	if len(selected) == 0 {
		return Assessment{}, ErrEmptySelection
	}

	a := Assessment{
		Findings:   []string{},
		Advice:     []Advice{},
		Disclaimer: Disclaimer,
	}

	seen := make(map[string]bool, len(selected))
	for _, name := range selected {
		if seen[name] {
			continue
		}
		seen[name] = true

		s, ok := Lookup(name)
		if !ok {
			a.Unknown = append(a.Unknown, name)
			continue
		}
		if s.Category.countsPCOS() {
			a.PCOSScore++
		}
		if s.Category.countsThyroid() {
			a.ThyroidScore++
		}
		if s.Advice != "" {
			a.Advice = append(a.Advice, Advice{Symptom: s.Name, Text: s.Advice})
		}
	}

	a.Verdict = decide(a.PCOSScore, a.ThyroidScore)

	if a.PCOSScore >= PCOSThreshold {
		a.Findings = append(a.Findings, findingPCOS)
	}
	if a.ThyroidScore >= ThyroidThreshold {
		a.Findings = append(a.Findings, findingThyroid)
	}
	if a.Verdict == VerdictMonitor {
		a.Findings = append(a.Findings, findingMonitor)
	}

	return a, nil
}

// decide applies the thresholds in order: PCOS wins over thyroid.
func decide(pcos, thyroid int) Verdict {
	switch {
	case pcos >= PCOSThreshold:
		return VerdictPotentialPCOS
	case thyroid >= ThyroidThreshold:
		return VerdictPotentialThyroid
	default:
		return VerdictMonitor
	}
}
