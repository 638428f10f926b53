package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanLlmResponse(t *testing.T) {
	c := NewCleaner()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `  {"matchScore": 80} `, `{"matchScore": 80}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "Here you go:\n```\n{\"a\":1}\n```\nthanks", `{"a":1}`},
		{"unterminated fence", "```", "```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.CleanLlmResponse(tt.in))
		})
	}
}

func TestCleanHTML(t *testing.T) {
	c := NewCleaner()

	html := `<html><head><style>p{}</style></head><body>
		<nav>Home | Jobs</nav>
		<h1>Warehouse Operative</h1>
		<p>Night   shifts in Rotterdam.</p>
		<ul><li>Forklift licence</li><li>Dutch or English</li></ul>
		<script>track()</script>
	</body></html>`

	got := c.CleanHTML(html)
	assert.Equal(t, "Home | Jobs\n\nWarehouse Operative\n\nNight shifts in Rotterdam.\n\nForklift licence\n\nDutch or English", got)
}

func TestCleanHTMLPlainTextPassesThrough(t *testing.T) {
	c := NewCleaner()
	in := "Line one\n\n\n\nLine   two "
	assert.Equal(t, "Line one\n\nLine two", c.CleanHTML(in))
}

func TestCleanHTMLKeepsAllText(t *testing.T) {
	c := NewCleaner()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single div", "<div>Just a   div</div>", "Just a div"},
		{
			"inline markup before a list",
			"Great remote role with <b>visa</b> sponsorship.\n<ul><li>Go</li><li>SQL</li></ul>",
			"Great remote role with visa sponsorship.\n\nGo\n\nSQL",
		},
		{
			"div then paragraph",
			"<div>Join our team in Berlin.</div><p>Apply now</p>",
			"Join our team in Berlin.\n\nApply now",
		},
		{
			"line breaks and spans",
			"<span>Salary</span> 50k<br>Start <i>ASAP</i><br/>Contact hr@acme.test",
			"Salary 50k\nStart ASAP\nContact hr@acme.test",
		},
		{
			"nested blocks with trailing text",
			"<section><h2>About</h2><div><p>We build ships.</p></div></section>Benefits included.",
			"About\n\nWe build ships.\n\nBenefits included.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.CleanHTML(tt.in))
		})
	}
}
