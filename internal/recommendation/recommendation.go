package recommendation

import (
	"fmt"

	"github.com/aretha12/MoGrow/internal/models"
)

type Recommendation struct {
	Headline   string   `json:"headline"`
	Summary    string   `json:"summary"`
	Causes     []string `json:"causes,omitempty"`
	Actions    []string `json:"actions"`
	Note       string   `json:"note,omitempty"`
	Disclaimer string   `json:"disclaimer"`
}

const (
	ChildDisclaimer    = "This is an early screening aid only and does not replace a diagnosis by a doctor."
	MaternalDisclaimer = "This result is an early screening only and does not replace an examination by a doctor or midwife."
)

type key struct {
	subject models.Subject
	label   models.Label
}

var advice = map[key]Recommendation{
	{models.SubjectChild, models.Stunted}: {
		Headline: "Risk of stunting",
		Summary:  "Length for age indicates a risk of stunting.",
		Causes: []string{
			"Unbalanced nutrient intake",
			"Low birth weight",
			"No exclusive breastfeeding",
			"Poor household sanitation",
		},
		Actions: []string{
			"Increase protein intake (eggs, fish, chicken, tempeh, tofu)",
			"Eat more fruit and vegetables",
			"Monitor growth regularly at the community health post",
			"Keep the home clean and sanitary",
			"Consult medical staff",
		},
		Note:       "Regular monitoring matters most during the first 1000 days of life.",
		Disclaimer: ChildDisclaimer,
	},
	{models.SubjectChild, models.NotStunted}: {
		Headline: "Growth is normal",
		Summary:  "Growth is normal for the child's age.",
		Actions: []string{
			"Eat balanced, nutritious meals",
			"Limit sweet and instant foods",
			"Stimulate development through play, reading and talking",
			"Sleep 10-12 hours a day",
			"Attend regular checks at the community health post",
		},
		Note:       "Optimal growth depends on nutrition, stimulation and parenting.",
		Disclaimer: ChildDisclaimer,
	},
	{models.SubjectMaternal, models.LowRisk}: {
		Headline: "Low risk",
		Summary:  "Maternal vital signs are within safe limits.",
		Actions: []string{
			"Eat balanced meals",
			"Attend routine pregnancy check-ups",
			"Drink enough water",
			"Do light exercise as advised",
		},
		Disclaimer: MaternalDisclaimer,
	},
	{models.SubjectMaternal, models.MediumRisk}: {
		Headline: "Medium risk",
		Summary:  "Some indicators need to be monitored.",
		Actions: []string{
			"Monitor blood pressure and blood sugar",
			"Reduce sugar and salt intake",
			"Get enough rest",
			"Manage stress well",
		},
		Disclaimer: MaternalDisclaimer,
	},
	{models.SubjectMaternal, models.HighRisk}: {
		Headline: "High risk",
		Summary:  "Vital parameters indicate a potentially serious risk.",
		Actions: []string{
			"Consult a doctor or midwife immediately",
			"Monitor blood pressure and blood sugar closely",
			"Avoid strenuous activity",
			"Watch for pregnancy danger signs",
		},
		Disclaimer: MaternalDisclaimer,
	},
}

// For returns the fixed advice block for a final label.
func For(subject models.Subject, label models.Label) (Recommendation, error) {
	rec, ok := advice[key{subject, label}]
	if !ok {
		return Recommendation{}, fmt.Errorf("%w: no advice for %s label %d", models.ErrUnrecognizedLabel, subject, label)
	}
	return rec, nil
}
