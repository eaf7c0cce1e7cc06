package assets

import (
	"fmt"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const methodologyMarkdown = `# Methodology

## What this dataset is

Every interventional drug or biologic trial on ClinicalTrials.gov with status
TERMINATED, SUSPENDED or WITHDRAWN, classified by why it stopped.

## Classification

Each trial's registered "why stopped" text is scored by a deterministic
keyword engine along three dimensions (safety, efficacy/futility,
regulatory), with negation handling, causal-proximity bonuses and explicit
denial penalties. The strongest dimension decides the verdict:

- **BIOLOGICAL_FAILURE** (reason SAFETY or EFFICACY/FUTILITY) when the text
  blames toxicity or a failed endpoint.
- **NON_BIOLOGICAL** (reason OPERATIONAL or REGULATORY) for funding,
  enrollment, business, sponsor and agency decisions.
- **UNCLEAR** when the text is empty, generic, or the scores cannot separate
  the hypotheses.

Confidence (HIGH, MEDIUM, LOW) reflects the winning score, and every verdict
carries an evidence string listing the matched terms and rules. When the
registered reason is generic, a snippet mined from the study description may
be classified instead; such verdicts are tagged "augmented_from_description".

## Aggregates

The outliers view compares each sponsor and disease area against its phase
cohort. Counts are shrunk toward the cohort baseline with a Beta prior, and
groups are ranked by the posterior probability that their bucket rate exceeds
the baseline. Only aggregate counts ship to the browser; rates are
reproducible from the published prior.

## Caveats

Registered stop reasons are self-reported, often terse, and sometimes
missing. Keyword classification cannot read intent; manual overrides correct
the worst misreads and are marked in the evidence column.
`

const methodologyPageShell = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Methodology</title>
</head>
<body>
<main>
%s</main>
</body>
</html>
`

// RenderMethodology renders the methodology page to standalone HTML.
func RenderMethodology() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(methodologyMarkdown))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.Render(doc, renderer)
	return []byte(fmt.Sprintf(methodologyPageShell, body))
}
