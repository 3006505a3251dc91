package submit

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// SchemaReport is the outcome of checking the live form against the
// configured entry ids.
type SchemaReport struct {
	Status        string   `json:"status"`
	Message       string   `json:"message"`
	MissingFields []string `json:"missing_fields"`
}

var (
	fbDataScriptRe = regexp.MustCompile(`(?s)FB_PUBLIC_LOAD_DATA_\s*=\s*(\[.+?\]);\s*</script>`)
	fbDataRe       = regexp.MustCompile(`(?s)FB_PUBLIC_LOAD_DATA_\s*=\s*(\[.+?\]);`)
)

// CheckSchema downloads the form's view page and verifies every configured
// entry id still exists in its FB_PUBLIC_LOAD_DATA_ definition. Forms get
// rebuilt by their owners without notice; this catches a silent drift before
// a scheduled submission runs into it.
func (c *Client) CheckSchema() SchemaReport {
	viewURL := c.ViewURL
	if viewURL == "" {
		viewURL = strings.Replace(c.SubmitURL, "/formResponse", "/viewform", 1)
		if !strings.HasSuffix(viewURL, "/viewform") {
			viewURL = c.SubmitURL
		}
	}

	resp, err := c.HTTP.Get(viewURL)
	if err != nil {
		return SchemaReport{Status: "failure", Message: fmt.Sprintf("error checking form schema: %v", err), MissingFields: []string{}}
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return SchemaReport{Status: "failure", Message: fmt.Sprintf("form page returned status %d", resp.StatusCode), MissingFields: []string{}}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return SchemaReport{Status: "failure", Message: fmt.Sprintf("error reading form page: %v", err), MissingFields: []string{}}
	}

	match := fbDataScriptRe.FindSubmatch(body)
	if match == nil {
		match = fbDataRe.FindSubmatch(body)
	}
	if match == nil {
		return SchemaReport{
			Status:        "failure",
			Message:       "could not find form definition (FB_PUBLIC_LOAD_DATA_) in HTML, form might be behind login",
			MissingFields: []string{},
		}
	}

	foundIDs, err := extractEntryIDs(match[1])
	if err != nil {
		return SchemaReport{Status: "failure", Message: fmt.Sprintf("error parsing form definition: %v", err), MissingFields: []string{}}
	}

	missing := []string{}
	for _, f := range c.Fields.Entries() {
		num := strings.TrimPrefix(f.ID, "entry.")
		if !foundIDs[num] {
			missing = append(missing, fmt.Sprintf("%s (%s)", f.Name, num))
		}
	}

	if len(missing) > 0 {
		return SchemaReport{
			Status:        "failure",
			Message:       "missing fields: " + strings.Join(missing, ", "),
			MissingFields: missing,
		}
	}
	return SchemaReport{
		Status:        "success",
		Message:       "all configured form fields found",
		MissingFields: missing,
	}
}

// extractEntryIDs walks the form definition array. Questions live at
// data[1][1]; each question row holds its answer entries at index 4, and an
// entry's first element is the numeric id.
func extractEntryIDs(raw []byte) (map[string]bool, error) {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()

	var data []any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}

	found := map[string]bool{}
	if len(data) < 2 {
		return found, nil
	}
	inner, ok := data[1].([]any)
	if !ok || len(inner) < 2 {
		return found, nil
	}
	questions, ok := inner[1].([]any)
	if !ok {
		return found, nil
	}

	for _, q := range questions {
		row, ok := q.([]any)
		if !ok || len(row) <= 4 {
			continue
		}
		entries, ok := row[4].([]any)
		if !ok {
			continue
		}
		for _, e := range entries {
			entry, ok := e.([]any)
			if !ok || len(entry) == 0 {
				continue
			}
			if num, ok := entry[0].(json.Number); ok {
				found[num.String()] = true
			}
		}
	}
	return found, nil
}
