package form

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/dukex/approved-premises/pkg/models"
)

// Record is one nested answer, e.g. a single imported OASys question.
type Record map[string]string

// Answer is either plain text or a list of records.
type Answer struct {
	Text    string
	Records []Record
}

// Value returns the JSON-friendly representation of the answer.
func (a Answer) Value() any {
	if a.Records != nil {
		return a.Records
	}

	return a.Text
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value())
}

// QuestionAnswer pairs a question with its rendered answer.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   Answer `json:"answer"`
}

// Response is the ordered list of questions and answers a page renders for review.
type Response []QuestionAnswer

// Add appends a text answer.
func (r *Response) Add(question, text string) {
	*r = append(*r, QuestionAnswer{Question: question, Answer: Answer{Text: text}})
}

// AddRecords appends a nested answer.
func (r *Response) AddRecords(question string, records []Record) {
	if records == nil {
		records = []Record{}
	}

	*r = append(*r, QuestionAnswer{Question: question, Answer: Answer{Records: records}})
}

// Get returns the answer to the given question.
func (r Response) Get(question string) (Answer, bool) {
	for _, qa := range r {
		if qa.Question == question {
			return qa.Answer, true
		}
	}

	return Answer{}, false
}

// Has reports whether the question is present.
func (r Response) Has(question string) bool {
	_, ok := r.Get(question)

	return ok
}

// Map flattens the response into question → value.
func (r Response) Map() map[string]any {
	out := make(map[string]any, len(r))
	for _, qa := range r {
		out[qa.Question] = qa.Answer.Value()
	}

	return out
}

// Entries converts the response into document entries.
func (r Response) Entries() []models.QuestionAnswer {
	out := make([]models.QuestionAnswer, 0, len(r))
	for _, qa := range r {
		out = append(out, models.QuestionAnswer{Question: qa.Question, Answer: qa.Answer.Value()})
	}

	return out
}

// SentenceCase turns a camelCase stored value into a readable label, e.g.
// "drugAlcoholMonitoring" becomes "Drug alcohol monitoring".
func SentenceCase(value string) string {
	if value == "" {
		return ""
	}

	var b strings.Builder

	for i, r := range value {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// YesNo renders a stored yes/no answer.
func YesNo(value string) string {
	switch value {
	case "yes":
		return "Yes"
	case "no":
		return "No"
	case "iDontKnow":
		return "I don't know"
	default:
		return SentenceCase(value)
	}
}

// Lookup translates a stored value through a label table, falling back to sentence case.
func Lookup(labels map[string]string, value string) string {
	if label, ok := labels[value]; ok {
		return label
	}

	return SentenceCase(value)
}

// LookupAll translates a list of stored values and joins them with commas.
func LookupAll(labels map[string]string, values []string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, Lookup(labels, v))
	}

	return strings.Join(out, ", ")
}
