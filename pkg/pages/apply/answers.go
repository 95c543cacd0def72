package apply

import (
	"strconv"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
)

func stored(artifact *models.Artifact, taskID, pageID string) (form.Body, bool) {
	if artifact == nil {
		return nil, false
	}

	data, ok := artifact.Data.Page(taskID, pageID)
	if !ok {
		return nil, false
	}

	return form.BodyFrom(data), true
}

// SentenceTypeOf returns the sentence type answered on the sentence-type page.
func SentenceTypeOf(artifact *models.Artifact) (string, bool) {
	body, ok := stored(artifact, BasicInformationTask, SentenceTypePage)
	if !ok {
		return "", false
	}

	value := body.String("sentenceType")
	if _, known := sentenceTypes[value]; !known {
		return "", false
	}

	return value, true
}

// ReleaseDateOf returns the known release date, if one was given.
func ReleaseDateOf(artifact *models.Artifact) (form.Date, bool) {
	body, ok := stored(artifact, BasicInformationTask, ReleaseDatePage)
	if !ok || body.String("knowReleaseDate") != "yes" {
		return form.Date{}, false
	}

	date := body.Date("releaseDate")
	if !date.Valid() {
		return form.Date{}, false
	}

	return date, true
}

// SelectedOasysSectionsOf returns the OASys section numbers chosen for import.
func SelectedOasysSectionsOf(artifact *models.Artifact) ([]int, bool) {
	body, ok := stored(artifact, OasysImportTask, OptionalOasysSectionsPage)
	if !ok {
		return nil, false
	}

	raw := append(body.Strings("needsLinkedToReoffending"), body.Strings("otherNeeds")...)
	out := make([]int, 0, len(raw))

	for _, s := range raw {
		n, err := strconv.Atoi(s)
		if err != nil {
			continue
		}

		out = append(out, n)
	}

	return out, true
}
