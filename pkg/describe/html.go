package describe

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-chartspec/pkg/schema"
)

var (
	policyOnce   sync.Once
	textPolicy   *bluemonday.Policy
	markupPolicy *bluemonday.Policy
)

// HTML renders obj as a definition list suitable for embedding in help pages.
// Descriptions are stripped of markup before they are placed in the list.
func HTML(obj schema.Object) string {
	return mustRender(func(r *Renderer) (string, error) { return r.HTML(obj) })
}

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()

		policy := bluemonday.NewPolicy()
		policy.AllowElements("dl", "dt", "dd", "code", "span")
		policy.AllowAttrs("class").OnElements("dl", "span")
		policy.AllowAttrs("data-path").OnElements("dl")
		policy.AllowDataAttributes()
		markupPolicy = policy
	})
	return textPolicy, markupPolicy
}
