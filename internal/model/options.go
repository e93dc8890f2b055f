package model

// Function is the business function ("industry" in prompts) a role belongs to.
type Function string

// Functions lists every selectable function, in display order.
var Functions = []Function{
	"Apprentice",
	"Business Operations",
	"Corporate Services (Admin)",
	"Customer Service",
	"Engineering and Technology",
	"Finance Compliance & Accounting",
	"Freelancer - Sales Associate",
	"Freelancer",
	"Freelancer Enterprise",
	"Human Resources & Training",
	"Infrastructure",
	"Information Security",
	"IT & Systems",
	"Jio Sales Associate",
	"Legal",
	"Marketing",
	"Operations",
	"Others",
	"Procurement and Contracts",
	"Product Management",
	"Regulatory",
	"Sales and Distribution",
	"Supply Chain",
}

// Valid reports whether f is one of Functions.
func (f Function) Valid() bool {
	for _, v := range Functions {
		if v == f {
			return true
		}
	}
	return false
}

// ExperienceBand is an ordered experience bracket.
type ExperienceBand string

// ExperienceBands lists the bands from least to most senior.
var ExperienceBands = []ExperienceBand{
	"Fresher",
	"Junior: 1-3 years",
	"Mid-Level: 4-6 years",
	"Senior: 7-10 years",
	"Executive: More than 10 years",
}

// Rank returns the position of e in ExperienceBands, or -1 if unknown.
func (e ExperienceBand) Rank() int {
	for i, v := range ExperienceBands {
		if v == e {
			return i
		}
	}
	return -1
}

// Valid reports whether e is one of ExperienceBands.
func (e ExperienceBand) Valid() bool { return e.Rank() >= 0 }

// Language is an output language for generated text.
type Language string

// BaseLanguage is the language FAQs are generated in.
const BaseLanguage Language = "English"

// Languages lists the supported output languages. The first entry is the default.
var Languages = []Language{
	"English",
	"Hindi",
	"Tamil",
	"Telugu",
	"Kannada",
	"Malayalam",
	"Marathi",
	"Gujarati",
	"Bengali",
	"Punjabi",
	"Odia",
}

// Valid reports whether l is one of Languages.
func (l Language) Valid() bool {
	for _, v := range Languages {
		if v == l {
			return true
		}
	}
	return false
}

// DefaultTemperature is the creativity preset offered to users.
const DefaultTemperature = 0.7

// TemperatureStep is the granularity of the creativity control.
const TemperatureStep = 0.1

// TemperatureSteps returns every selectable creativity value from 0.0 to 1.0.
func TemperatureSteps() []float64 {
	steps := make([]float64, 0, 11)
	for i := 0; i <= 10; i++ {
		steps = append(steps, float64(i)/10)
	}
	return steps
}
