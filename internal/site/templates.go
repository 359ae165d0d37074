package site

// layoutTemplate wraps every HTML page.
const layoutTemplate = `{{define "head"}}<!DOCTYPE html>
<html lang="{{.Meta.Language}}"{{if .Reported}} data-viewport="reported"{{end}} data-mobile="{{.Mobile}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · {{.Meta.Title}}</title>
  <meta name="description" content="{{.Meta.Description}}">
  <link rel="stylesheet" href="/static/style.css">
  <link rel="stylesheet" href="/theme.css">
  <link rel="alternate" type="application/rss+xml" title="{{.Meta.Title}}" href="/rss.xml">
  <link rel="alternate" type="application/feed+json" title="{{.Meta.Title}}" href="/feed.json">
</head>
<body>
{{end}}

{{define "foot"}}
  <script src="/static/desk.js" defer></script>
</body>
</html>
{{end}}

{{define "statusbar"}}
<header class="statusbar">
  <a class="brand" href="/">{{.Meta.Title}}</a>
  <nav class="launcher">
    {{range .Launcher}}
    <form method="post" action="/desk/spawn">
      <input type="hidden" name="kind" value="{{.Kind}}">
      <button type="submit">{{.Label}}</button>
    </form>
    {{end}}
  </nav>
  <form class="theme-picker" method="post" action="/theme">
    <select name="preset" aria-label="preset">
      {{range .ThemeForm.Presets}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}
    </select>
    <select name="accent" aria-label="accent colour">
      {{range .ThemeForm.Accents}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}
    </select>
    <select name="background" aria-label="background">
      {{range .ThemeForm.Backgrounds}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}
    </select>
    <button type="submit">apply</button>
  </form>
  <form method="post" action="/theme/reset"><button type="submit">reset</button></form>
</header>
{{end}}`

// deskTemplate renders the tiled desktop, or the single pane on mobile.
const deskTemplate = `{{template "head" .}}
{{template "statusbar" .}}
{{if .Pane}}
<main class="pane">
  <nav class="pane-nav">
    <form method="post" action="/desk/back"><button type="submit"{{if not .CanBack}} disabled{{end}}>&larr; back</button></form>
    <span class="pane-title">{{.Pane.Title}}</span>
    <form method="post" action="/desk/forward"><button type="submit"{{if not .CanForward}} disabled{{end}}>forward &rarr;</button></form>
  </nav>
  <section class="tile focused">
    <div class="tile-body">{{.Pane.Body}}</div>
  </section>
</main>
{{else}}
<main class="desk">
  {{range .Tiles}}
  <section class="tile{{if .Focused}} focused{{end}}" id="tile-{{.ID}}" style="{{.Style}}">
    <header class="tile-bar">
      <form method="post" action="/desk/tiles/{{.ID}}/focus"><button class="tile-title" type="submit">{{.Title}}</button></form>
      {{if .Closable}}<form method="post" action="/desk/tiles/{{.ID}}/close"><button class="tile-close" type="submit" aria-label="close">&times;</button></form>{{end}}
    </header>
    <div class="tile-body">{{.Body}}</div>
  </section>
  {{end}}
</main>
<footer class="hints">{{range .Hints}}<span><kbd>{{.Key}}</kbd> {{.Desc}}</span>{{end}}</footer>
{{end}}
{{template "foot" .}}`

// detailTemplate renders one piece of content on its own route.
const detailTemplate = `{{template "head" .}}
<main class="pane detail">
  <nav class="pane-nav">
    <a href="/">&larr; desk</a>
    <span class="pane-title">{{.Pane.Title}}</span>
    <form method="post" action="/desk/spawn">
      <input type="hidden" name="kind" value="{{.Pane.Kind}}">
      <input type="hidden" name="data" value="{{.Pane.Data}}">
      <button type="submit">open in desk</button>
    </form>
  </nav>
  <article class="tile focused">
    <div class="tile-body">{{.Pane.Body}}</div>
  </article>
</main>
{{template "foot" .}}`

// tileTemplates hold the body of each tile kind.
const tileTemplates = `{{define "spawn"}}<form class="spawn" method="post" action="/desk/spawn"><input type="hidden" name="kind" value="{{.Kind}}"><input type="hidden" name="data" value="{{.Data}}"><button type="submit">{{.Label}}</button></form>{{end}}

{{define "tile-home"}}
<pre class="prompt">$ whoami
{{.Meta.Author}}
$ cat motd
{{.Meta.Description}}</pre>
{{if .Posts}}<h3>latest posts</h3>
<ul class="listing">{{range .Posts}}<li>{{template "spawn" (spawnPost .)}} <time>{{date .Date}}</time></li>{{end}}</ul>{{end}}
{{if .Projects}}<h3>projects</h3>
<ul class="listing">{{range .Projects}}<li>{{template "spawn" (spawnProject .)}}{{if .Featured}} <span class="badge">featured</span>{{end}}</li>{{end}}</ul>{{end}}
{{end}}

{{define "tile-page"}}<div class="prose">{{.Body}}</div>{{end}}

{{define "tile-projects"}}
<ul class="listing">{{range .}}<li>
  {{template "spawn" (spawnProject .)}}{{if .Featured}} <span class="badge">featured</span>{{end}}
  <p class="summary">{{.Summary}}</p>
  {{if .Stack}}<p class="tags">{{range .Stack}}<span class="tag">{{.}}</span>{{end}}</p>{{end}}
</li>{{else}}<li class="empty">no projects yet</li>{{end}}</ul>
{{end}}

{{define "tile-project"}}
<h1>{{.Title}}</h1>
<p class="meta"><time>{{date .Date}}</time>{{if .Repo}} · <a href="{{.Repo}}">source</a>{{end}} · <a href="{{.URL}}">permalink</a></p>
{{if .Stack}}<p class="tags">{{range .Stack}}<span class="tag">{{.}}</span>{{end}}</p>{{end}}
<div class="prose">{{.Body}}</div>
{{end}}

{{define "tile-blog"}}
<ul class="listing">{{range .}}<li>
  {{template "spawn" (spawnPost .)}} <time>{{date .Date}}</time>
  <p class="summary">{{.Summary}}</p>
</li>{{else}}<li class="empty">no posts yet</li>{{end}}</ul>
{{end}}

{{define "tile-post"}}
{{with .Post}}
<h1>{{.Title}}</h1>
<p class="meta"><time datetime="{{iso .Date}}">{{date .Date}}</time> · {{.ReadingTime}} min read{{if .Series}} · series: {{.Series}}{{end}} · <a href="{{.URL}}">permalink</a></p>
{{if .Tags}}<p class="tags">{{range .Tags}}<span class="tag">#{{.}}</span>{{end}}</p>{{end}}
{{if .Cover}}<img class="cover" src="{{.Cover}}" alt="">{{end}}
{{end}}
{{if .Audio}}<audio class="narration" controls preload="none" src="{{.Audio}}"></audio>{{end}}
<div class="prose">{{.Post.Body}}</div>
{{end}}

{{define "tile-missing"}}<p class="empty">{{.}} not found</p>{{end}}`

// notFoundTemplate is served for unknown routes.
const notFoundTemplate = `{{template "head" .}}
<main class="pane"><section class="tile focused"><div class="tile-body">
<pre class="prompt">$ cd {{.Title}}
cd: no such file or directory</pre>
<p><a href="/">back to the desk</a></p>
</div></section></main>
{{template "foot" .}}`

const cssContent = `*, *::before, *::after { box-sizing: border-box; }
html, body { margin: 0; height: 100%; }
body {
  background-color: var(--bg);
  background-image: var(--bg-image);
  background-size: 24px 24px;
  color: var(--text);
  font: 14px/1.55 "JetBrains Mono", "Fira Code", ui-monospace, monospace;
}
a { color: var(--accent); }
a:hover { color: var(--accent-hover); }
button, select {
  font: inherit; color: var(--text); background: var(--overlay);
  border: 1px solid var(--border); border-radius: 4px; padding: 2px 8px; cursor: pointer;
}
button:hover { border-color: var(--accent); }
button[disabled] { opacity: .4; cursor: default; }
form { display: inline; margin: 0; }

.statusbar {
  display: flex; gap: 12px; align-items: center; height: 36px; padding: 0 12px;
  background: var(--surface); border-bottom: 1px solid var(--border);
}
.brand { font-weight: 700; text-decoration: none; }
.launcher { display: flex; gap: 6px; flex: 1; }
.theme-picker { display: flex; gap: 4px; }

.desk { position: relative; height: calc(100vh - 36px - 28px); margin: 0 6px; }
.desk .tile { position: absolute; }
.tile {
  display: flex; flex-direction: column; overflow: hidden;
  background: var(--surface); border: 1px solid var(--border); border-radius: 6px;
}
.tile.focused { border-color: var(--accent); box-shadow: 0 0 0 1px var(--accent-muted); }
.tile-bar {
  display: flex; justify-content: space-between; align-items: center;
  padding: 2px 6px; background: var(--overlay); color: var(--subtext);
}
.tile-title, .tile-close { background: none; border: none; padding: 0 4px; }
.tile.focused .tile-title { color: var(--accent); }
.tile-body { padding: 10px 14px; overflow: auto; flex: 1; }

.pane { max-width: 760px; margin: 12px auto; padding: 0 8px; }
.pane-nav { display: flex; justify-content: space-between; align-items: center; margin-bottom: 8px; }
.pane-title { color: var(--subtext); }

.prompt { color: var(--subtext); }
.listing { list-style: none; padding: 0; }
.listing li { margin: 6px 0; }
.listing time, .meta { color: var(--muted); }
.summary { margin: 2px 0 0; color: var(--subtext); }
.tag, .badge {
  display: inline-block; margin-right: 6px; padding: 0 6px; border-radius: 3px;
  background: var(--accent-muted); color: var(--text); font-size: 12px;
}
.spawn button { background: none; border: none; padding: 0; color: var(--accent); }
.cover { max-width: 100%; border-radius: 4px; }
.narration { width: 100%; margin: 8px 0; }
.prose pre { background: var(--bg); padding: 8px; border-radius: 4px; overflow-x: auto; }
.empty { color: var(--muted); }
.hints { display: flex; gap: 16px; height: 28px; padding: 4px 12px; color: var(--muted); font-size: 12px; }
kbd { color: var(--accent); }
`

const jsContent = `(function () {
  var root = document.documentElement;

  function post(url, body, json) {
    var opts = { method: "POST", credentials: "same-origin", headers: { Accept: "application/json" } };
    if (json) {
      opts.headers["Content-Type"] = "application/json";
      opts.body = JSON.stringify(body);
    } else {
      opts.headers["Content-Type"] = "application/x-www-form-urlencoded";
      opts.body = new URLSearchParams(body).toString();
    }
    return fetch(url, opts);
  }

  var breakpoint = parseInt(getComputedStyle(root).getPropertyValue("--breakpoint"), 10) || 1024;

  // Detail pages are shared by every visitor, so they keep relying on the
  // media query instead of claiming a reported viewport.
  function reportViewport() {
    var mobile = window.innerWidth < breakpoint;
    post("/desk/viewport", { width: window.innerWidth, height: window.innerHeight }, true).then(function () {
      if (document.querySelector(".detail")) return;
      root.dataset.viewport = "reported";
      if (String(mobile) !== root.dataset.mobile) location.reload();
    });
  }

  var resizeTimer;
  window.addEventListener("resize", function () {
    clearTimeout(resizeTimer);
    resizeTimer = setTimeout(reportViewport, 200);
  });
  if (root.dataset.viewport !== "reported") reportViewport();

  var names = { ArrowLeft: "left", ArrowRight: "right", ArrowUp: "up", ArrowDown: "down", Enter: "enter" };
  document.addEventListener("keydown", function (e) {
    if (!e.altKey || document.querySelector(".detail")) return;
    var k = names[e.key] || e.key.toLowerCase();
    e.preventDefault();
    post("/desk/keys", { key: "alt+" + k }).then(function (r) { return r.json(); }).then(function (res) {
      if (res.action !== "none") location.reload();
    });
  });

  if (!window.WebSocket) return;
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onmessage = function (msg) {
    var ev = JSON.parse(msg.data);
    if (ev.type === "revalidated" && (ev.path === location.pathname || ev.path === "/")) location.reload();
    if (ev.type === "theme") {
      var link = document.querySelector('link[href^="/theme.css"]');
      if (link) link.href = "/theme.css?v=" + ev.at;
    }
  };
})();
`
