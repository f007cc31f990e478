package server

import "html/template"

var page = template.Must(template.New("page").Parse(pageHTML))

// pageHTML mirrors the board: it polls /api/board, copies region text and
// classes onto elements with matching ids, and reloads canvas images. Window
// resizes are reported back so canvases are redrawn at the new width.
const pageHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Risk Board</title>
<style>
body{background:#0a0a0a;color:#e4e4e7;font-family:system-ui,sans-serif;margin:2rem}
.cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(160px,1fr));gap:1rem}
.card{border:1px solid #27272a;border-radius:8px;padding:.75rem}
.risk-low{color:#22c55e}.risk-medium{color:#eab308}.risk-high{color:#f97316}.risk-critical{color:#ef4444}
.alert-low{background:#14532d}.alert-guarded{background:#1e3a8a}.alert-elevated{background:#713f12}
.alert-high{background:#7c2d12}.alert-severe{background:#7f1d1d}
#alert-level{padding:.5rem 1rem;border-radius:6px;display:inline-block}
</style>
</head>
<body>
<h1>Total risk <span id="total-risk">--</span></h1>
<div id="alert-level">--</div>
<p><span id="elevated-count"></span> · updated <span id="last-updated">--</span> · next in <span id="countdown">--:--</span></p>
<img data-canvas="trend-chart" alt="trend">
<div class="cards">
{{range .}}<div class="card" id="{{.}}-card"><h3>{{.}}</h3><div id="{{.}}-value">--</div><div id="{{.}}-detail"></div><img data-canvas="{{.}}-sparkline" alt=""></div>
{{end}}</div>
<script>
async function refresh(){
  const r = await fetch('/api/board'); if(!r.ok) return;
  const st = await r.json();
  for (const [id, reg] of Object.entries(st.regions)) {
    const el = document.getElementById(id); if(!el) continue;
    if (!id.endsWith('-card') && id !== 'gauge-fill') el.textContent = reg.text || el.textContent;
    if (reg.class) el.className = (el.classList.contains('card') ? 'card ' : '') + reg.class;
  }
  for (const img of document.querySelectorAll('img[data-canvas]')) img.src = '/canvas/' + img.dataset.canvas + '?t=' + Date.now();
}
function viewport(){ fetch('/api/viewport?width=' + window.innerWidth, {method:'POST'}); }
window.addEventListener('resize', viewport);
viewport(); refresh(); setInterval(refresh, 1000);
</script>
</body>
</html>`
