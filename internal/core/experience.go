package core

// Experience is the required work experience of a posting (experience_id column).
type Experience string

const (
	ExperienceNone        Experience = "noExperience"
	ExperienceOneToThree  Experience = "between1And3"
	ExperienceThreeToSix  Experience = "between3And6"
	ExperienceMoreThanSix Experience = "moreThan6"

	// ExperienceUnspecified is used when the column is absent or holds an unknown code.
	ExperienceUnspecified Experience = ""
)

var experienceLabels = map[Experience]string{
	ExperienceNone:        "Нет опыта",
	ExperienceOneToThree:  "От 1 года до 3 лет",
	ExperienceThreeToSix:  "От 3 до 6 лет",
	ExperienceMoreThanSix: "Более 6 лет",
}

// ParseExperience maps a raw experience code to the vocabulary.
func ParseExperience(s string) Experience {
	e := Experience(s)
	if _, ok := experienceLabels[e]; ok {
		return e
	}
	return ExperienceUnspecified
}

// Label returns the display label, or "" for ExperienceUnspecified.
func (e Experience) Label() string {
	return experienceLabels[e]
}

// ID returns the sort key used by reports: 1 for no experience up to 4 for
// more than six years, 5 for anything else.
func (e Experience) ID() int {
	switch e {
	case ExperienceNone:
		return 1
	case ExperienceOneToThree:
		return 2
	case ExperienceThreeToSix:
		return 3
	case ExperienceMoreThanSix:
		return 4
	default:
		return 5
	}
}

// columnLabels holds the display name of every known input column.
var columnLabels = map[string]string{
	ColName:        "Название",
	ColDescription: "Описание",
	ColKeySkills:   "Навыки",
	ColExperience:  "Опыт работы",
	ColPremium:     "Премиум-вакансия",
	ColEmployer:    "Компания",
	ColSalaryFrom:  "Нижняя граница вилки оклада",
	ColSalaryTo:    "Верхняя граница вилки оклада",
	ColSalaryGross: "Оклад указан до вычета налогов",
	ColCurrency:    "Идентификатор валюты оклада",
	ColArea:        "Название региона",
	ColPublishedAt: "Дата публикации вакансии",
}

// ColumnLabel returns the display name of an input column, or the column
// name itself when it is not part of the known vocabulary.
func ColumnLabel(column string) string {
	if label, ok := columnLabels[column]; ok {
		return label
	}
	return column
}

// YesNo renders a boolean flag the way reports show premium postings.
func YesNo(b bool) string {
	if b {
		return "Да"
	}
	return "Нет"
}
