package reporting

import (
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	"github.com/capsaicin/mockscan/internal/detection"
	"github.com/capsaicin/mockscan/internal/scanner"
)

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Mockscan Report</title>
	<style>
		* { margin: 0; padding: 0; box-sizing: border-box; }
		body {
			font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
			background: #f5f5f5;
			padding: 20px;
			color: #333;
		}
		.container { max-width: 1200px; margin: 0 auto; background: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
		h1 { font-size: 24px; margin-bottom: 10px; color: #222; }
		h2 { font-size: 18px; margin: 30px 0 10px; }
		.meta { color: #666; font-size: 14px; margin-bottom: 30px; }
		.stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: 15px; margin-bottom: 30px; }
		.stat-card { background: #f9f9f9; padding: 15px; border-radius: 6px; border-left: 3px solid #007bff; }
		.stat-value { font-size: 24px; font-weight: bold; color: #007bff; }
		.stat-label { font-size: 12px; color: #666; margin-top: 5px; }
		.search-box { margin-bottom: 20px; }
		#searchInput { width: 100%; padding: 12px; font-size: 14px; border: 1px solid #ddd; border-radius: 6px; }
		.target { border: 1px solid #eee; border-radius: 6px; padding: 20px; margin-bottom: 20px; }
		table { width: 100%; border-collapse: collapse; font-size: 14px; margin-top: 10px; }
		th { background: #f0f0f0; padding: 10px; text-align: left; font-weight: 600; border-bottom: 2px solid #ddd; }
		td { padding: 8px 10px; border-bottom: 1px solid #eee; }
		.finding { background: #fff5f5; border-left: 3px solid #dc3545; padding: 10px; margin-top: 10px; border-radius: 4px; }
		.clean { color: #28a745; font-weight: 600; margin-top: 10px; }
		.error { color: #dc3545; font-weight: 600; }
		.badge { display: inline-block; padding: 3px 8px; border-radius: 4px; font-size: 11px; font-weight: 600; margin: 3px 5px 0 0; background: #dc3545; color: white; }
		.badge-cached { background: #6f42c1; }
		.badge-high { background: #fd7e14; }
		.badge-medium { background: #ffc107; color: #333; }
		.badge-low { background: #6c757d; }
		code { background: #f4f4f4; padding: 2px 6px; border-radius: 3px; font-family: monospace; font-size: 13px; }
	</style>
</head>
<body>
	<div class="container">
		<h1>Mockscan Report</h1>
		<div class="meta">Generated: {{.Generated}}</div>

		<div class="stats">
			<div class="stat-card"><div class="stat-value">{{len .Targets}}</div><div class="stat-label">Targets</div></div>
			<div class="stat-card"><div class="stat-value">{{.URLCount}}</div><div class="stat-label">Discovered URLs</div></div>
			<div class="stat-card"><div class="stat-value">{{.FindingCount}}</div><div class="stat-label">Vulnerabilities</div></div>
			<div class="stat-card"><div class="stat-value">{{index .Counts "cached"}}</div><div class="stat-label">Cached</div></div>
			<div class="stat-card"><div class="stat-value">{{index .Counts "failed"}}</div><div class="stat-label">Failed</div></div>
		</div>

		<div class="search-box">
			<input type="text" id="searchInput" placeholder="Search targets...">
		</div>
{{range .Targets}}
		<div class="target">
			<h2><code>{{.Normalized}}</code>{{if .Cached}} <span class="badge badge-cached">CACHED</span>{{end}}</h2>
{{- if .Error}}
			<div class="error">{{.Error}}</div>
{{- else if .Result}}
			<table>
				<thead><tr><th>#</th><th>URL</th></tr></thead>
				<tbody>
{{- range .Result.DiscoveredURLs}}
					<tr><td>{{.Index}}</td><td><code>{{.URL}}</code></td></tr>
{{- end}}
				</tbody>
			</table>
{{- range .Result.Vulnerabilities}}
			<div class="finding">
				<code>{{.URL}}</code><br>
{{- range .Vulnerabilities}}
				<span class="badge badge-{{severity .}}">{{.}}</span>
{{- end}}
			</div>
{{- else}}
			<div class="clean">No vulnerabilities detected!</div>
{{- end}}
{{- end}}
		</div>
{{- end}}
	</div>

	<script>
		document.getElementById('searchInput').addEventListener('input', function(e) {
			const searchTerm = e.target.value.toLowerCase();
			document.querySelectorAll('.target').forEach(card => {
				card.style.display = card.textContent.toLowerCase().includes(searchTerm) ? '' : 'none';
			});
		});
	</script>
</body>
</html>
`

var reportPage = template.Must(template.New("report").Funcs(template.FuncMap{
	"severity": func(name string) string { return string(detection.SeverityOf(name)) },
}).Parse(reportTemplate))

type htmlPage struct {
	Generated    string
	Targets      []TargetReport
	Counts       map[string]int
	URLCount     int
	FindingCount int
}

// RenderHTML writes a standalone page for outcomes, sorted like the JSON
// report.
func RenderHTML(w io.Writer, outcomes []scanner.Outcome, generated time.Time) error {
	page := htmlPage{
		Generated: generated.Format("2006-01-02 15:04:05"),
		Counts:    CountOutcomes(outcomes),
	}
	for _, o := range sortedCopy(outcomes) {
		page.Targets = append(page.Targets, NewTargetReport(o))
		if o.Result != nil {
			page.URLCount += len(o.Result.DiscoveredURLs)
			page.FindingCount += o.Result.FindingCount()
		}
	}
	return reportPage.Execute(w, page)
}

func GenerateHTML(outcomes []scanner.Outcome, filename string) error {
	var sb strings.Builder
	if err := RenderHTML(&sb, outcomes, time.Now()); err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(sb.String()), 0644)
}
