// FilePath: internal/views/views.templates.go
package views

// Base layout

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#0d1117;color:#c9d1d9;font-size:14px;line-height:1.5}
a{color:#58a6ff;text-decoration:none}
nav{background:#161b22;border-bottom:1px solid #30363d;padding:8px 16px;display:flex;gap:16px;align-items:center}
nav .brand{color:#f0f6fc;font-weight:700;margin-right:8px}
nav a{color:#8b949e;padding:4px 8px;border-radius:4px}
nav a.active{color:#f0f6fc;background:#21262d}
main{padding:16px;max-width:1200px}
h1{font-size:18px;color:#f0f6fc;margin-bottom:12px}
h2.section-title{font-size:13px;color:#8b949e;text-transform:uppercase;letter-spacing:.06em;margin:16px 0 8px}
.container{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:12px 16px;margin-bottom:12px}
.drop-zone{border:2px dashed #30363d;border-radius:6px;padding:24px;text-align:center;cursor:pointer;color:#8b949e}
.drop-zone.dragover{border-color:#58a6ff;background:#1f6feb22}
.status-message,.status{margin:8px 0}
.info{color:#8b949e}
.success{color:#56d364}
.error{color:#f87171}
.table-container{overflow-x:auto}
table.data-table{width:100%;border-collapse:collapse;font-size:13px}
.data-table th{text-align:left;padding:6px 10px;border-bottom:1px solid #30363d;color:#8b949e}
.data-table td{padding:5px 10px;border-bottom:1px solid #21262d}
.checkbox-col{width:32px}
.bulk-actions{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:8px 12px;margin-bottom:12px}
.filters{display:flex;gap:8px;flex-wrap:wrap;align-items:center;margin:8px 0}
.audio-item{display:flex;gap:12px;align-items:center}
.audio-item.selected{border-color:#1f6feb}
button{background:#1f6feb;border:none;color:#fff;padding:4px 12px;border-radius:4px;cursor:pointer}
button.danger{background:#da3633}
</style>
</head>
<body>
<nav>
  <span class="brand">{{.Title}}</span>
  <a href="/"{{if eq .Active "home"}} class="active"{{end}}>Home</a>
  <a href="/insert"{{if eq .Active "insert"}} class="active"{{end}}>Insert</a>
  <a href="/audio"{{if eq .Active "audio"}} class="active"{{end}}>Audio</a>
  <a href="/query"{{if eq .Active "query"}} class="active"{{end}}>Query</a>
</nav>
<main>
{{if not .Flash.Empty}}<p id="flash" class="status-message {{.Flash.Kind}}">{{.Flash.Message}}</p>{{end}}
{{template "content" .Body}}
</main>
<script>
` + consoleScript + `
</script>
</body>
</html>{{end}}
`

// Shared partials

const tmplPartials = `
{{define "status"}}{{if not .Empty}}<p class="status-message {{.Kind}}">{{.Message}}</p>{{end}}{{end}}

{{define "table"}}<h2 class="section-title">{{.Title}}</h2>
<div class="table-container"><table class="data-table"><thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody></table></div>{{end}}

{{define "correlation"}}<div id="correlation-content">{{template "status" .Status}}{{with .Sensor}}{{template "table" .}}{{end}}{{with .Weather}}{{template "table" .}}{{end}}</div>{{end}}

{{define "toolbar"}}<div id="bulk-actions-container" class="bulk-actions" style="display: {{if .Visible}}block{{else}}none{{end}}">
<span id="selected-count">{{.Count}}</span> selected
<button type="submit" class="danger">Delete Selected</button>
</div>{{end}}

{{define "bulk-fields"}}<input type="hidden" name="type" value="{{.Source}}">
<input type="hidden" name="return_to" value="{{.ReturnTo}}">
<input type="hidden" name="confirmed" value="">{{end}}

{{define "upload-widget"}}<div class="container upload-box">
<h2 class="section-title">Upload {{.Widget.FileTypeLabel}}</h2>
<form id="{{.Widget.FormID}}" class="upload-widget" method="post" enctype="multipart/form-data"
  action="{{.Widget.SubmitEndpoint}}"
  data-drop-zone="{{.Widget.DropZoneID}}" data-file-input="{{.Widget.FileInputID}}"
  data-status="{{.Widget.StatusID}}" data-label="{{.Widget.FileTypeLabel}}">
<div id="{{.Widget.DropZoneID}}" class="drop-zone">Drop a {{.Widget.FileTypeLabel}} file here or click to browse</div>
<input type="file" id="{{.Widget.FileInputID}}" name="file" accept="{{.Widget.Accept}}" hidden>
<button type="submit">Upload</button>
</form>
<p id="{{.Widget.StatusID}}" class="status {{.Status.Kind}}">{{.Status.Message}}</p>
</div>{{end}}
`

const tmplHome = `
{{define "content"}}<h1>Environmental Monitoring</h1>
<div class="container">
<p><a href="/insert">Insert</a> CSV data and audio recordings, browse <a href="/audio">audio</a> and correlated readings, or <a href="/query">query</a> sensor and weather records.</p>
</div>
<h2 class="section-title">Recent activity</h2>
{{if .Activity}}<div class="table-container"><table class="data-table" id="activity">
<thead><tr><th>When</th><th>Action</th><th>Kind</th><th>Target</th><th>Outcome</th><th>Detail</th></tr></thead>
<tbody>{{range .Activity}}<tr><td>{{fmtTime .CreatedAt}}</td><td>{{.Action}}</td><td>{{.Kind}}</td><td>{{.Target}}</td><td class="{{outcomeClass .Outcome}}">{{.Outcome}}</td><td>{{.Detail}}</td></tr>{{end}}</tbody>
</table></div>{{else}}<p class="status-message info">No console activity yet.</p>{{end}}{{end}}
`

const tmplInsert = `
{{define "content"}}<h1>Insert Data</h1>
{{range .Panels}}{{template "upload-widget" .}}{{end}}{{end}}
`

const tmplAudio = `
{{define "content"}}<h1>Audio Recordings</h1>
<div id="audio-list-viewport">
{{if .Cards}}<form id="bulk-delete-form" method="post" action="/console/v1/delete">
{{template "bulk-fields" .Toolbar}}
{{template "toolbar" .Toolbar}}
{{range .Cards}}<div class="container upload-box audio-item{{if .Selected}} selected{{end}}" data-audio-id="{{.ID}}" data-filename="{{.Filename}}">
<input type="checkbox" class="row-checkbox" name="ids" value="{{.ID}}">
<a class="audio-link" href="{{.Href}}"><h3>{{.Filename}}</h3><small>{{.Subtitle}}</small></a>
</div>
{{end}}</form>{{else}}{{template "status" .Status}}{{end}}
</div>
{{with .Panel}}<section id="correlation">
<h2 class="section-title">{{.Title}}</h2>
{{template "correlation" .Panel}}
</section>{{end}}{{end}}
`

const tmplDetail = `
{{define "content"}}<p><a href="/audio">Back to recordings</a></p>
{{if .Title}}<h1 id="audio-title">{{.Title}}</h1>{{end}}
<section id="correlation">{{template "correlation" .Panel}}</section>{{end}}
`

const tmplQuery = `
{{define "content"}}<h1>Query Data</h1>
<form id="query-form" method="get" action="/query">
<div class="filters">
<label for="data-select">Source</label>
<select id="data-select" name="source">
<option value="">Select a data source</option>
{{range .Sources}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{end}}</select>
<button type="button" id="toggle-filters-btn">{{.Filter.Label}}</button>
<input type="hidden" id="filters-open" name="filters" value="{{if .Filter.Open}}1{{end}}">
<button type="submit" id="load-data-btn">Load Data</button>
</div>
<div id="filter-options" class="filters" style="display: {{if .Filter.Open}}flex{{else}}none{{end}}">
<label>From <input type="date" id="start-date" name="start_date" value="{{.Params.StartDate}}"></label>
{{if .TimeRange}}<input type="time" id="start-time" name="start_time" value="{{.Params.StartTime}}">{{end}}
<label>To <input type="date" id="end-date" name="end_date" value="{{.Params.EndDate}}"></label>
{{if .TimeRange}}<input type="time" id="end-time" name="end_time" value="{{.Params.EndTime}}">{{end}}
</div>
</form>
<div id="results-area">
{{template "status" .Status}}
{{with .Table}}<form id="bulk-delete-form" method="post" action="/console/v1/delete">
{{template "bulk-fields" $.Toolbar}}
{{template "toolbar" $.Toolbar}}
<div class="table-container"><table class="data-table"><thead><tr>
<th class="checkbox-col"><input type="checkbox" id="select-all-rows"></th>{{range .Headers}}<th>{{.}}</th>{{end}}
</tr></thead>
<tbody>{{range .Rows}}<tr><td class="checkbox-col"><input type="checkbox" class="row-checkbox" name="ids" value="{{.ID}}"></td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody></table></div>
</form>{{end}}
</div>{{end}}
`

const tmplConfirm = `
{{define "content"}}<h1>Confirm deletion</h1>
<form id="confirm-delete-form" method="post" action="/console/v1/delete" class="container">
<p class="status-message info">{{.Prompt}}</p>
<p>{{.Selection.Count}} rows of {{.Selection.Source}}</p>
{{range .Selection.IDs}}<input type="hidden" name="ids" value="{{.}}">
{{end}}<input type="hidden" name="type" value="{{.Selection.Source}}">
<input type="hidden" name="return_to" value="{{.ReturnTo}}">
<input type="hidden" name="confirmed" value="yes">
<button type="submit" class="danger">Delete</button>
<a href="{{.ReturnTo}}">Cancel</a>
</form>{{end}}
`

// consoleScript binds the upload widgets, the selection toolbar and the filter
// toggle. The server renders the same state for the initial page.
const consoleScript = `
document.addEventListener('DOMContentLoaded', function () {
  document.querySelectorAll('form.upload-widget').forEach(bindUploadWidget);
  bindSelection();
  bindFilterToggle();
});

function setStatus(el, message, isError) {
  el.textContent = message;
  el.className = 'status ' + (isError ? 'error' : 'success');
}

function bindUploadWidget(form) {
  var zone = document.getElementById(form.dataset.dropZone);
  var input = document.getElementById(form.dataset.fileInput);
  var status = document.getElementById(form.dataset.status);
  var label = form.dataset.label;

  zone.addEventListener('click', function () { input.click(); });
  input.addEventListener('change', function () {
    if (input.files.length > 0) setStatus(status, label + ' selected: ' + input.files[0].name, false);
  });
  ['dragenter', 'dragover', 'dragleave', 'drop'].forEach(function (name) {
    zone.addEventListener(name, function (e) { e.preventDefault(); e.stopPropagation(); }, false);
  });
  ['dragenter', 'dragover'].forEach(function (name) {
    zone.addEventListener(name, function () { zone.classList.add('dragover'); }, false);
  });
  ['dragleave', 'drop'].forEach(function (name) {
    zone.addEventListener(name, function () { zone.classList.remove('dragover'); }, false);
  });
  zone.addEventListener('drop', function (e) {
    input.files = e.dataTransfer.files;
    if (input.files.length > 0) setStatus(status, label + ' dropped: ' + input.files[0].name, false);
  }, false);

  form.addEventListener('submit', function (e) {
    e.preventDefault();
    if (input.files.length === 0) {
      setStatus(status, 'Please select a ' + label + ' file first.', true);
      return;
    }
    var body = new FormData();
    body.append('file', input.files[0]);
    setStatus(status, 'Uploading ' + input.files[0].name + '...', false);
    fetch(form.action, { method: 'POST', body: body, headers: { 'Accept': 'application/json' } })
      .then(function (resp) { return resp.json(); })
      .then(function (result) {
        setStatus(status, result.message, result.is_error);
        if (result.clear_input) input.value = '';
      })
      .catch(function (err) {
        setStatus(status, 'A network or server error occurred: ' + err.message, true);
      });
  });
}

function bindSelection() {
  var form = document.getElementById('bulk-delete-form');
  if (!form) return;
  var container = document.getElementById('bulk-actions-container');
  var count = document.getElementById('selected-count');

  function sync() {
    var n = form.querySelectorAll('.row-checkbox:checked').length;
    container.style.display = n > 0 ? 'block' : 'none';
    count.textContent = n;
  }

  document.addEventListener('change', function (e) {
    if (e.target.id === 'select-all-rows') {
      form.querySelectorAll('.row-checkbox').forEach(function (cb) { cb.checked = e.target.checked; });
    }
    if (e.target.id === 'select-all-rows' || e.target.classList.contains('row-checkbox')) sync();
  });

  form.addEventListener('submit', function (e) {
    if (form.querySelectorAll('.row-checkbox:checked').length === 0) {
      e.preventDefault();
      alert('No rows selected for deletion.');
      return;
    }
    if (!confirm('Are you sure about deleting the selected rows?')) {
      e.preventDefault();
      return;
    }
    form.elements['confirmed'].value = 'yes';
  });
  sync();
}

function bindFilterToggle() {
  var btn = document.getElementById('toggle-filters-btn');
  var panel = document.getElementById('filter-options');
  var flag = document.getElementById('filters-open');
  if (!btn || !panel) return;
  btn.addEventListener('click', function () {
    var open = panel.style.display === 'none' || panel.style.display === '';
    panel.style.display = open ? 'flex' : 'none';
    btn.textContent = open ? 'Hide Filters' : 'Filter';
    if (flag) flag.value = open ? '1' : '';
  });
}
`
