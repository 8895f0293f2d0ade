package lead

// AcademicLevel is an option of the academic level select.
type AcademicLevel struct {
	Value string
	// LabelKey is the catalog key of the localized label.
	LabelKey string
}

var academicLevels = []AcademicLevel{
	{Value: "bachelor", LabelKey: "form.level.bachelor"},
	{Value: "master", LabelKey: "form.level.master"},
	{Value: "diploma", LabelKey: "form.level.diploma"},
	{Value: "phd", LabelKey: "form.level.phd"},
	{Value: "associate", LabelKey: "form.level.associate"},
}

// AcademicLevels returns the selectable levels in display order.
func AcademicLevels() []AcademicLevel {
	return append([]AcademicLevel(nil), academicLevels...)
}

// AcademicLevelLabelKey returns the catalog key for value, or value itself
// when it is not a known level.
func AcademicLevelLabelKey(value string) string {
	for _, level := range academicLevels {
		if level.Value == value {
			return level.LabelKey
		}
	}
	return value
}
