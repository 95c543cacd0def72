package form

import (
	"github.com/dukex/approved-premises/pkg/models"
)

// TaskStatus is the completion state of a task on the task list.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskComplete   TaskStatus = "complete"
)

// TaskState is a task with its computed status.
type TaskState struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Status TaskStatus `json:"status"`
	// FirstPage is where the task starts when opened from the task list.
	FirstPage string `json:"first_page"`
}

// SectionState is a section with the states of its tasks.
type SectionState struct {
	Name  string      `json:"name"`
	Title string      `json:"title"`
	Tasks []TaskState `json:"tasks"`
}

// StatusOf works out how far through a task the artifact is. Starting at the first page, it
// follows Next while each visited page has a stored, valid body; reaching the end of the
// task means the task is complete.
func StatusOf(task Task, artifact *models.Artifact) (TaskStatus, error) {
	stored, ok := artifact.Data[task.ID]
	if !ok || len(stored) == 0 || len(task.Pages) == 0 {
		return TaskNotStarted, nil
	}

	current := task.Pages[0].Name
	previous := ""

	for range task.Pages {
		factory, ok := task.Page(current)
		if !ok {
			return "", &UnknownPageError{PageID: current}
		}

		body, ok := stored[current]
		if !ok {
			return TaskInProgress, nil
		}

		page, err := factory.New(BodyFrom(body), artifact, previous)
		if err != nil {
			return "", err
		}

		if len(page.Errors()) > 0 {
			return TaskInProgress, nil
		}

		next, err := page.Next()
		if err != nil {
			return "", err
		}

		if next == "" {
			return TaskComplete, nil
		}

		previous, current = current, next
	}

	return TaskInProgress, nil
}

// TaskList computes the status of every task of the artifact's journey.
func (r *Registry) TaskList(artifact *models.Artifact) ([]SectionState, error) {
	sections := r.Sections(artifact.Type)
	out := make([]SectionState, 0, len(sections))

	for _, section := range sections {
		state := SectionState{Name: section.Name, Title: section.Title, Tasks: make([]TaskState, 0, len(section.Tasks))}

		for _, task := range section.Tasks {
			status, err := StatusOf(task, artifact)
			if err != nil {
				return nil, err
			}

			first := ""
			if len(task.Pages) > 0 {
				first = task.Pages[0].Name
			}

			state.Tasks = append(state.Tasks, TaskState{ID: task.ID, Title: task.Title, Status: status, FirstPage: first})
		}

		out = append(out, state)
	}

	return out, nil
}
