package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Title   string   // Page title
	Person  string   // Initial person focus
	Genders []string // Initial gender filter
	Search  string   // Initial name search text
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Title: "Wikipedia Person Network",
	}
}

// initialSelection is the filter state embedded in the page. The widgets
// pick it up on load, so exported pages open pre-filtered.
type initialSelection struct {
	Person  string   `json:"person"`
	Genders []string `json:"genders"`
	Search  string   `json:"search"`
}

// GenerateHTML generates a self-contained HTML page for the network.
// All people, links, metrics, and positions are embedded in the page and
// the filter controls work client-side, so the export opens from file://.
func GenerateHTML(graph *GraphData, opts HTMLOptions) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}

	if graph.IsEmpty() {
		return generateEmptyHTML(), nil
	}

	graphJSON, err := json.Marshal(graph)
	if err != nil {
		return "", fmt.Errorf("marshaling graph data: %w", err)
	}

	selection := initialSelection{
		Person:  opts.Person,
		Genders: opts.Genders,
		Search:  opts.Search,
	}
	if selection.Genders == nil {
		selection.Genders = []string{}
	}
	selectionJSON, err := json.Marshal(selection)
	if err != nil {
		return "", fmt.Errorf("marshaling selection: %w", err)
	}

	data := templateData{
		Title:         opts.Title,
		ScriptTag:     template.HTML(plotlyScriptTag),
		GraphJSON:     template.JS(graphJSON),
		SelectionJSON: template.JS(selectionJSON),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// templateData holds data for the HTML template.
type templateData struct {
	Title         string
	ScriptTag     template.HTML
	GraphJSON     template.JS
	SelectionJSON template.JS
}

// plotlyScriptTag loads Plotly.js from the CDN.
const plotlyScriptTag = `<script src="https://cdn.plot.ly/plotly-2.35.2.min.js" charset="utf-8"></script>`

// generateEmptyHTML returns HTML for an empty network state.
func generateEmptyHTML() string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Wikipedia Person Network - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
    .empty-state h2 {
      margin-bottom: 0.5em;
      color: #333;
    }
    .empty-state p {
      margin: 0.5em 0;
    }
    .empty-state code {
      background: #e0e0e0;
      padding: 2px 6px;
      border-radius: 3px;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No network data</h2>
    <p>The network has no people yet.</p>
    <p>Check the people CSV configured for this workspace,</p>
    <p>then fetch links with <code>wikinet fetch</code></p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  {{.ScriptTag}}
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
      display: flex;
      min-height: 100vh;
    }
    #sidebar {
      width: 280px;
      flex-shrink: 0;
      background: white;
      border-right: 1px solid #ddd;
      padding: 16px;
      overflow-y: auto;
    }
    #sidebar h1 {
      font-size: 18px;
      margin: 0 0 16px;
      color: #333;
    }
    #sidebar label {
      display: block;
      font-size: 12px;
      font-weight: bold;
      text-transform: uppercase;
      color: #888;
      margin: 16px 0 4px;
    }
    #sidebar select,
    #sidebar input[type="text"] {
      width: 100%;
      padding: 6px 8px;
      border: 1px solid #ccc;
      border-radius: 4px;
      font-size: 13px;
    }
    #genders div {
      margin: 2px 0;
      font-size: 13px;
      color: #333;
    }
    #reset {
      margin-top: 16px;
      padding: 6px 12px;
      border: 1px solid #ccc;
      border-radius: 4px;
      background: #f5f5f5;
      cursor: pointer;
      font-size: 13px;
    }
    #reset:hover {
      background: #e8e8e8;
    }
    #summary {
      margin-top: 16px;
      padding: 8px;
      border-radius: 4px;
      font-size: 13px;
      background: #e8f5e9;
      color: #2e7d32;
    }
    #summary.warning {
      background: #fff3e0;
      color: #e65100;
    }
    #main {
      flex-grow: 1;
      padding: 16px;
      overflow-y: auto;
    }
    #plot {
      width: 100%;
      height: 60vh;
      background: white;
      border: 1px solid #ddd;
      border-radius: 4px;
    }
    #charts {
      display: flex;
      gap: 16px;
      margin-top: 16px;
    }
    .chart {
      flex: 1;
      height: 280px;
      background: white;
      border: 1px solid #ddd;
      border-radius: 4px;
    }
    #metrics {
      margin-top: 16px;
      background: white;
      border: 1px solid #ddd;
      border-radius: 4px;
      padding: 8px 16px 16px;
    }
    #metrics h2 {
      font-size: 15px;
      color: #333;
    }
    #metrics table {
      width: 100%;
      border-collapse: collapse;
      font-size: 13px;
    }
    #metrics th {
      text-align: left;
      border-bottom: 2px solid #ddd;
      padding: 6px 8px;
      color: #555;
    }
    #metrics td {
      border-bottom: 1px solid #eee;
      padding: 6px 8px;
      color: #333;
    }
  </style>
</head>
<body>
  <div id="sidebar">
    <h1>{{.Title}}</h1>
    <label for="person">Select a Person</label>
    <select id="person"></select>
    <label>Filter by Gender</label>
    <div id="genders"></div>
    <label for="search">Search by Name</label>
    <input type="text" id="search" placeholder="e.g. Borges">
    <button id="reset">Reset filters</button>
    <div id="summary"></div>
  </div>
  <div id="main">
    <div id="plot"></div>
    <div id="charts">
      <div id="gender-chart" class="chart"></div>
      <div id="occupation-chart" class="chart"></div>
    </div>
    <div id="metrics">
      <h2>Node Metrics</h2>
      <table>
        <thead>
          <tr>
            <th>Name</th><th>Gender</th><th>Occupation</th>
            <th>In-Degree</th><th>Out-Degree</th><th>PageRank</th>
          </tr>
        </thead>
        <tbody id="metrics-body"></tbody>
      </table>
    </div>
  </div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const initialSelection = {{.SelectionJSON}};

      const nodesById = new Map();
      graphData.nodes.forEach(function(n) { nodesById.set(n.id, n); });

      // Undirected neighbor sets over the full edge list, for person focus.
      const neighbors = new Map();
      graphData.nodes.forEach(function(n) { neighbors.set(n.id, new Set()); });
      graphData.edges.forEach(function(e) {
        neighbors.get(e.source).add(e.target);
        neighbors.get(e.target).add(e.source);
      });

      function currentSelection() {
        const genders = [];
        document.querySelectorAll('#genders input:checked').forEach(function(cb) {
          genders.push(cb.value);
        });
        return {
          person: document.getElementById('person').value,
          genders: genders,
          search: document.getElementById('search').value
        };
      }

      // Filters are pure restrictions of the precomputed network: metrics
      // and positions are never recomputed, nodes and edges are only hidden.
      function applySelection(sel) {
        const keep = new Set();
        const query = sel.search.trim().toLowerCase();
        graphData.nodes.forEach(function(n) {
          if (sel.genders.length > 0 && sel.genders.indexOf(n.gender) === -1) return;
          if (query !== '' && n.label.toLowerCase().indexOf(query) === -1) return;
          keep.add(n.id);
        });

        if (sel.person !== '') {
          const focus = new Set([sel.person]);
          const around = neighbors.get(sel.person);
          if (around) around.forEach(function(id) { focus.add(id); });
          keep.forEach(function(id) { if (!focus.has(id)) keep.delete(id); });
        }

        return {
          nodes: graphData.nodes.filter(function(n) { return keep.has(n.id); }),
          edges: graphData.edges.filter(function(e) {
            return keep.has(e.source) && keep.has(e.target);
          })
        };
      }

      function nodeHover(n) {
        let text = '<b>' + n.label + '</b>';
        if (n.gender) text += '<br>Gender: ' + n.gender;
        if (n.occupation) text += '<br>Occupation: ' + n.occupation;
        text += '<br>In-Degree: ' + n.inDegree;
        text += '<br>Out-Degree: ' + n.outDegree;
        text += '<br>PageRank: ' + n.pagerank.toFixed(4);
        return text;
      }

      function renderNetwork(sel, view) {
        const xe = [], ye = [], ze = [];
        view.edges.forEach(function(e) {
          const s = nodesById.get(e.source);
          const t = nodesById.get(e.target);
          xe.push(s.x, t.x, null);
          ye.push(s.y, t.y, null);
          ze.push(s.z, t.z, null);
        });

        const edgeTrace = {
          type: 'scatter3d',
          mode: 'lines',
          x: xe, y: ye, z: ze,
          line: { color: 'gray', width: 1 },
          hoverinfo: 'none'
        };

        const nodeTrace = {
          type: 'scatter3d',
          mode: 'markers+text',
          x: view.nodes.map(function(n) { return n.x; }),
          y: view.nodes.map(function(n) { return n.y; }),
          z: view.nodes.map(function(n) { return n.z; }),
          text: view.nodes.map(function(n) { return n.label; }),
          textposition: 'top center',
          hovertext: view.nodes.map(nodeHover),
          hoverinfo: 'text',
          marker: {
            size: view.nodes.map(function(n) { return n.size; }),
            color: 'skyblue'
          }
        };

        const title = sel.person !== ''
          ? '3D Wikipedia Network: ' + sel.person
          : '3D Wikipedia Network';

        Plotly.react('plot', [edgeTrace, nodeTrace], {
          title: { text: title },
          showlegend: false,
          margin: { l: 0, r: 0, b: 0, t: 50 },
          scene: {
            xaxis: { showgrid: false },
            yaxis: { showgrid: false },
            zaxis: { showgrid: false }
          }
        }, { responsive: true });
      }

      // Count people per value, empty values bucketed as Unknown,
      // sorted by count descending then value ascending.
      function countBy(nodes, key) {
        const counts = new Map();
        nodes.forEach(function(n) {
          const value = n[key] || 'Unknown';
          counts.set(value, (counts.get(value) || 0) + 1);
        });
        const entries = Array.from(counts.entries());
        entries.sort(function(a, b) {
          if (a[1] !== b[1]) return b[1] - a[1];
          return a[0] < b[0] ? -1 : 1;
        });
        return entries;
      }

      function renderChart(divID, title, entries) {
        Plotly.react(divID, [{
          type: 'bar',
          x: entries.map(function(e) { return e[0]; }),
          y: entries.map(function(e) { return e[1]; }),
          marker: { color: '#4A90D9' }
        }], {
          title: { text: title, font: { size: 14 } },
          margin: { l: 40, r: 10, b: 80, t: 40 }
        }, { responsive: true });
      }

      function escapeHtml(str) {
        if (!str) return '';
        return str.replace(/&/g, '&amp;')
                  .replace(/</g, '&lt;')
                  .replace(/>/g, '&gt;')
                  .replace(/"/g, '&quot;');
      }

      function renderMetrics(nodes) {
        const sorted = nodes.slice().sort(function(a, b) {
          if (a.pagerank !== b.pagerank) return b.pagerank - a.pagerank;
          return a.label < b.label ? -1 : 1;
        });
        let html = '';
        sorted.forEach(function(n) {
          html += '<tr>';
          html += '<td>' + escapeHtml(n.label) + '</td>';
          html += '<td>' + escapeHtml(n.gender || 'Unknown') + '</td>';
          html += '<td>' + escapeHtml(n.occupation || 'Unknown') + '</td>';
          html += '<td>' + n.inDegree + '</td>';
          html += '<td>' + n.outDegree + '</td>';
          html += '<td>' + n.pagerank.toFixed(5) + '</td>';
          html += '</tr>';
        });
        document.getElementById('metrics-body').innerHTML = html;
      }

      function render() {
        const sel = currentSelection();
        const view = applySelection(sel);

        const summary = document.getElementById('summary');
        if (view.nodes.length === 0) {
          summary.className = 'warning';
          summary.textContent = 'No nodes available after filtering. Try changing filters or person.';
        } else {
          summary.className = '';
          summary.textContent = 'Graph has ' + view.nodes.length + ' nodes and ' +
            view.edges.length + ' edges.';
        }

        renderNetwork(sel, view);
        renderChart('gender-chart', 'Gender', countBy(view.nodes, 'gender'));
        renderChart('occupation-chart', 'Occupation', countBy(view.nodes, 'occupation'));
        renderMetrics(view.nodes);
      }

      function initControls() {
        const personSelect = document.getElementById('person');
        const allOption = document.createElement('option');
        allOption.value = '';
        allOption.textContent = 'All people';
        personSelect.appendChild(allOption);

        const names = graphData.nodes.map(function(n) { return n.id; }).sort();
        names.forEach(function(name) {
          const option = document.createElement('option');
          option.value = name;
          option.textContent = name;
          personSelect.appendChild(option);
        });
        if (nodesById.has(initialSelection.person)) {
          personSelect.value = initialSelection.person;
        }

        const gendersDiv = document.getElementById('genders');
        const seen = new Set();
        graphData.nodes.forEach(function(n) {
          if (!n.gender || seen.has(n.gender)) return;
          seen.add(n.gender);
          const row = document.createElement('div');
          const cb = document.createElement('input');
          cb.type = 'checkbox';
          cb.value = n.gender;
          cb.id = 'gender-' + seen.size;
          cb.checked = initialSelection.genders.indexOf(n.gender) !== -1;
          cb.addEventListener('change', render);
          const label = document.createElement('label');
          label.htmlFor = cb.id;
          label.style.display = 'inline';
          label.style.textTransform = 'none';
          label.style.fontWeight = 'normal';
          label.textContent = ' ' + n.gender;
          row.appendChild(cb);
          row.appendChild(label);
          gendersDiv.appendChild(row);
        });

        const search = document.getElementById('search');
        search.value = initialSelection.search;

        personSelect.addEventListener('change', render);
        search.addEventListener('input', render);
        document.getElementById('reset').addEventListener('click', function() {
          personSelect.value = '';
          search.value = '';
          document.querySelectorAll('#genders input').forEach(function(cb) {
            cb.checked = false;
          });
          render();
        });
      }

      initControls();
      render();
    })();
  </script>
</body>
</html>`
