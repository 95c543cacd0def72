package form

import (
	"fmt"

	"github.com/dukex/approved-premises/pkg/models"
)

// Task is a named, ordered group of pages.
type Task struct {
	ID    string
	Title string
	Pages []PageFactory
}

// Page returns the factory registered under name.
func (t Task) Page(name string) (PageFactory, bool) {
	for _, p := range t.Pages {
		if p.Name == name {
			return p, true
		}
	}

	return PageFactory{}, false
}

// Section groups tasks on the task list.
type Section struct {
	Name  string
	Title string
	Tasks []Task
}

// Journey is the full section tree of one questionnaire.
type Journey struct {
	Type     models.JourneyType
	Sections []Section
}

type journeyIndex struct {
	journey Journey
	tasks   map[string]Task
	pages   map[string]map[string]PageFactory
}

// Registry resolves pages by journey, task and page id. It is built once and never
// modified afterwards.
type Registry struct {
	journeys map[models.JourneyType]*journeyIndex
	order    []models.JourneyType
}

// NewRegistry indexes the given journeys. Duplicate journeys, tasks or pages are rejected.
func NewRegistry(journeys ...Journey) (*Registry, error) {
	r := &Registry{journeys: make(map[models.JourneyType]*journeyIndex, len(journeys))}

	for _, j := range journeys {
		if _, exists := r.journeys[j.Type]; exists {
			return nil, fmt.Errorf("journey %s registered twice", j.Type)
		}

		idx := &journeyIndex{
			journey: j,
			tasks:   make(map[string]Task),
			pages:   make(map[string]map[string]PageFactory),
		}

		for _, section := range j.Sections {
			for _, task := range section.Tasks {
				if _, exists := idx.tasks[task.ID]; exists {
					return nil, fmt.Errorf("task %s registered twice in %s", task.ID, j.Type)
				}

				pages := make(map[string]PageFactory, len(task.Pages))

				for _, page := range task.Pages {
					if _, exists := pages[page.Name]; exists {
						return nil, fmt.Errorf("page %s registered twice in %s/%s", page.Name, j.Type, task.ID)
					}

					if page.New == nil || (page.Kind == KindAsync && page.Initialize == nil) {
						return nil, fmt.Errorf("page %s in %s/%s is missing a constructor", page.Name, j.Type, task.ID)
					}

					pages[page.Name] = page
				}

				idx.tasks[task.ID] = task
				idx.pages[task.ID] = pages
			}
		}

		r.journeys[j.Type] = idx
		r.order = append(r.order, j.Type)
	}

	return r, nil
}

// MustRegistry is like NewRegistry but panics on a malformed journey definition.
func MustRegistry(journeys ...Journey) *Registry {
	r, err := NewRegistry(journeys...)
	if err != nil {
		panic(err)
	}

	return r
}

// Page returns the factory for pageID in taskID under the given journey.
func (r *Registry) Page(journey models.JourneyType, taskID, pageID string) (PageFactory, error) {
	idx, ok := r.journeys[journey]
	if !ok {
		return PageFactory{}, &UnknownPageError{PageID: pageID}
	}

	page, ok := idx.pages[taskID][pageID]
	if !ok {
		return PageFactory{}, &UnknownPageError{PageID: pageID}
	}

	return page, nil
}

// Task returns the task registered under taskID.
func (r *Registry) Task(journey models.JourneyType, taskID string) (Task, bool) {
	idx, ok := r.journeys[journey]
	if !ok {
		return Task{}, false
	}

	task, ok := idx.tasks[taskID]

	return task, ok
}

// Sections returns the sections of a journey in display order.
func (r *Registry) Sections(journey models.JourneyType) []Section {
	idx, ok := r.journeys[journey]
	if !ok {
		return nil
	}

	return idx.journey.Sections
}

// Journeys returns the registered journey types in registration order.
func (r *Registry) Journeys() []models.JourneyType {
	out := make([]models.JourneyType, len(r.order))
	copy(out, r.order)

	return out
}
