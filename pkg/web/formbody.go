package web

import (
	"encoding/json"
	"strings"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/gofiber/fiber/v3"
)

// formBody reads the submitted page body. URL-encoded forms follow the usual conventions:
// a repeated key (checkbox group) or a key ending in "[]" becomes a list, and "name[key]"
// becomes a nested map under name. JSON bodies are taken as they are.
func formBody(c fiber.Ctx) (form.Body, error) {
	if c.Is("json") {
		body := form.Body{}
		if len(c.Body()) == 0 {
			return body, nil
		}

		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return nil, err
		}

		return body, nil
	}

	values := make(map[string][]string)
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		values[k] = append(values[k], string(value))
	})

	return decodeForm(values), nil
}

func decodeForm(values map[string][]string) form.Body {
	body := form.Body{}

	for key, vals := range values {
		if strings.HasPrefix(key, "_") {
			continue
		}

		if name, ok := strings.CutSuffix(key, "[]"); ok {
			body[name] = append([]string{}, vals...)

			continue
		}

		if open := strings.IndexByte(key, '['); open > 0 && strings.HasSuffix(key, "]") {
			name, sub := key[:open], key[open+1:len(key)-1]

			nested, ok := body[name].(map[string]any)
			if !ok {
				nested = make(map[string]any)
				body[name] = nested
			}

			nested[sub] = vals[len(vals)-1]

			continue
		}

		if len(vals) == 1 {
			body[key] = vals[0]
		} else {
			body[key] = append([]string{}, vals...)
		}
	}

	return body
}
