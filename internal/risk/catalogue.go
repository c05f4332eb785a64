package risk

import (
	"fmt"
)

// Category tags a checklist symptom with the condition(s) it counts toward.
type Category string

const (
	CategoryPCOS        Category = "pcos"
	CategoryThyroid     Category = "thyroid"
	CategoryPCOSThyroid Category = "pcos_thyroid"
)

// countsPCOS reports whether a symptom in this category adds to the PCOS score.
func (c Category) countsPCOS() bool {
	return c == CategoryPCOS || c == CategoryPCOSThyroid
}

// countsThyroid reports whether a symptom in this category adds to the thyroid score.
func (c Category) countsThyroid() bool {
	return c == CategoryThyroid || c == CategoryPCOSThyroid
}

func (c Category) valid() bool {
	return c.countsPCOS() || c.countsThyroid()
}

// Symptom is one entry of the fixed checklist.
type Symptom struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Advice   string   `json:"advice,omitempty"`
}

// Checklist symptom names.
const (
	IrregularPeriods = "Irregular or Missed Periods"
	HeavyBleeding    = "Heavy Menstrual Bleeding"
	HairGrowth       = "Excessive Hair Growth"
	AcneOilySkin     = "Acne or Oily Skin"
	WeightGain       = "Weight Gain / Difficulty Losing Weight"
	HairLoss         = "Hair Loss or Thinning"
	Fatigue          = "Fatigue or Low Energy"
	AnxietyDepressed = "Anxiety or Depression"
	TemperatureSense = "Sensitivity to Cold or Heat"
)

const catalogueSize = 9

const (
	adviceWeight     = "For Weight Management: Focus on a low-glycemic diet and reduce processed sugars. Regular exercise is also key."
	adviceSkin       = "For Skin Health: Consider reducing dairy and high-sugar foods. Ensure you're getting enough zinc."
	adviceEnergy     = "To Boost Energy: Check your iron levels. Incorporate iron-rich foods like spinach and lentils."
	adviceRegularity = "For Cycle Regularity: Healthy fats (avocado, nuts) and magnesium can support hormonal balance."
)

// checklist is in display order.
var checklist = []Symptom{
	{Name: IrregularPeriods, Category: CategoryPCOS},
	{Name: HeavyBleeding, Category: CategoryPCOS},
	{Name: HairGrowth, Category: CategoryPCOS},
	{Name: AcneOilySkin, Category: CategoryPCOS},
	{Name: WeightGain, Category: CategoryPCOSThyroid},
	{Name: HairLoss, Category: CategoryPCOSThyroid},
	{Name: Fatigue, Category: CategoryThyroid},
	{Name: AnxietyDepressed, Category: CategoryPCOSThyroid},
	{Name: TemperatureSense, Category: CategoryThyroid},
}

// advice is keyed by symptom name. Symptoms without an entry contribute no snippet.
var advice = map[string]string{
	WeightGain:       adviceWeight,
	AcneOilySkin:     adviceSkin,
	Fatigue:          adviceEnergy,
	IrregularPeriods: adviceRegularity,
	HeavyBleeding:    adviceRegularity,
}

var byName map[string]Symptom

func init() {
	var err error
	byName, err = buildIndex(checklist, advice, catalogueSize)
	if err != nil {
		panic(fmt.Sprintf("risk: invalid symptom catalogue: %v", err))
	}
	for i := range checklist {
		checklist[i].Advice = byName[checklist[i].Name].Advice
	}
}

// buildIndex validates a catalogue and returns it keyed by name with advice attached.
func buildIndex(symptoms []Symptom, adviceByName map[string]string, wantSize int) (map[string]Symptom, error) {
	if len(symptoms) != wantSize {
		return nil, fmt.Errorf("expected %d symptoms, got %d", wantSize, len(symptoms))
	}

	index := make(map[string]Symptom, len(symptoms))
	for _, s := range symptoms {
		if s.Name == "" {
			return nil, fmt.Errorf("symptom with empty name")
		}
		if !s.Category.valid() {
			return nil, fmt.Errorf("symptom %q has unknown category %q", s.Name, s.Category)
		}
		if _, dup := index[s.Name]; dup {
			return nil, fmt.Errorf("duplicate symptom %q", s.Name)
		}
		s.Advice = adviceByName[s.Name]
		index[s.Name] = s
	}

	for name := range adviceByName {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("advice for %q which is not in the catalogue", name)
		}
	}

	return index, nil
}

// Catalogue returns the checklist in display order.
func Catalogue() []Symptom {
	out := make([]Symptom, len(checklist))
	copy(out, checklist)
	return out
}

// Lookup finds a checklist symptom by its exact name.
func Lookup(name string) (Symptom, bool) {
	s, ok := byName[name]
	return s, ok
}
