package models

// DisplaySkill is one of the fixed buckets the dashboard reports skill
// availability under.
type DisplaySkill string

const (
	SkillProjectManagement DisplaySkill = "Project Management"
	SkillAnalisis          DisplaySkill = "Análisis"
	SkillDiseno            DisplaySkill = "Diseño"
	SkillConstruccion      DisplaySkill = "Construcción"
	SkillQA                DisplaySkill = "QA"
	SkillGeneral           DisplaySkill = "General"
)

// SkillDisplayOrder is the fixed order skill buckets appear in chart series.
var SkillDisplayOrder = []DisplaySkill{
	SkillProjectManagement,
	SkillAnalisis,
	SkillDiseno,
	SkillConstruccion,
	SkillQA,
	SkillGeneral,
}

// FoldSkill maps any declared skill name onto its display bucket. The mapping
// is total: names outside the fixed list fold into General.
func FoldSkill(name string) DisplaySkill {
	switch DisplaySkill(name) {
	case SkillProjectManagement, SkillAnalisis, SkillDiseno, SkillConstruccion, SkillQA, SkillGeneral:
		return DisplaySkill(name)
	}
	// "PM" is a legacy alias still present in older resource records.
	if name == "PM" {
		return SkillProjectManagement
	}
	return SkillGeneral
}
