package models

import "fmt"

type Label int

const (
	NotStunted Label = 0
	Stunted    Label = 1
)

const (
	LowRisk    Label = 0
	MediumRisk Label = 1
	HighRisk   Label = 2
)

var labelNames = map[Subject][]string{
	SubjectChild:    {"not_stunted", "stunted"},
	SubjectMaternal: {"low_risk", "medium_risk", "high_risk"},
}

// Labels returns the enumerated labels of a subject in class order.
func Labels(subject Subject) []Label {
	names := labelNames[subject]
	labels := make([]Label, len(names))
	for i := range names {
		labels[i] = Label(i)
	}
	return labels
}

// RecognizeLabel maps a raw classifier output onto the subject's label set.
func RecognizeLabel(subject Subject, raw int) (Label, error) {
	names, ok := labelNames[subject]
	if !ok {
		return 0, fmt.Errorf("%w: unknown subject %q", ErrUnrecognizedLabel, subject)
	}
	if raw < 0 || raw >= len(names) {
		return 0, fmt.Errorf("%w: %d is not a %s label", ErrUnrecognizedLabel, raw, subject)
	}
	return Label(raw), nil
}

func LabelName(subject Subject, label Label) string {
	names := labelNames[subject]
	if int(label) < 0 || int(label) >= len(names) {
		return fmt.Sprintf("unknown(%d)", int(label))
	}
	return names[label]
}

// ParseLabel resolves a configured label name such as "medium_risk".
func ParseLabel(subject Subject, name string) (Label, error) {
	for i, candidate := range labelNames[subject] {
		if candidate == name {
			return Label(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s label %q", subject, name)
}
