package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/reference"
)

func personPath(crn string) string {
	return "/people/" + url.PathEscape(crn)
}

func (c *Client) OasysSections(ctx context.Context, token, crn string, selected []int) (*models.OasysSections, error) {
	path := personPath(crn) + "/oasys/sections"

	if len(selected) > 0 {
		q := url.Values{}
		for _, s := range selected {
			q.Add("selected-sections", strconv.Itoa(s))
		}

		path += "?" + q.Encode()
	}

	var sections models.OasysSections

	err := c.do(ctx, http.MethodGet, path, token, nil, &sections)
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			return nil, reference.ErrUnavailable
		}

		return nil, err
	}

	return &sections, nil
}

func (c *Client) PersonRisks(ctx context.Context, token, crn string) (*models.PersonRisks, error) {
	var risks models.PersonRisks

	err := c.do(ctx, http.MethodGet, personPath(crn)+"/risks", token, nil, &risks)
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			return nil, reference.ErrUnavailable
		}

		return nil, err
	}

	return &risks, nil
}

// Services returns the reference lookups served by this client.
func (c *Client) Services() reference.Services {
	return reference.Services{Oasys: c, Risks: c}
}
