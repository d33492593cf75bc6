package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/tower-siege-chess/internal/app"
	"github.com/jaminalder/tower-siege-chess/internal/domain"
)

type templates struct {
	base  *template.Template
	game  *template.Template
	board *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"unitLabel": func(u domain.Unit) string {
			if u.Kind == domain.NoKind {
				return ""
			}
			return u.Kind.Symbol() + u.Owner.String()[1:]
		},
		"ownerClass": func(u domain.Unit) string {
			switch u.Owner {
			case domain.P1:
				return "p1"
			case domain.P2:
				return "p2"
			}
			return ""
		},
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tower Siege Chess</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>` + style + `</style>
</head><body>{{template "content" .}}</body></html>`))
	// Define the board template within the same set so game can include it
	template.Must(base.New("board").Funcs(funcs()).Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tower Siege Chess</h1><form action="/game" method="post"><button>New game</button></form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div id="board-slot" hx-sse="swap:board">{{template "board" .}}</div>
</div>`))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
	return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

const style = `
.grid { display: grid; grid-template-columns: repeat(8, 3em); }
.grid form { margin: 0; }
.grid button { width: 3em; height: 3em; border: 1px solid #555; font-weight: bold; }
.plain { background: #6c6; } .water { background: #48f; } .red { background: #e55; } .gray { background: #999; }
.p1 { color: #fff; } .p2 { color: #000; }
.selected { outline: 3px solid gold; }
`

const boardTemplate = `
<div id="board">
  <p class="status">
	{{if .Over}}<strong>{{.Winner}} wins!</strong>
	{{else}}Turn: <strong>{{.Active}}</strong>, actions used {{.ActionsUsed}}/2{{end}}
	| Tower HP P1 {{.TowerHP.P1}} P2 {{.TowerHP.P2}}
  </p>
  {{range .Notices}}
  <div class="alert"><b>{{.Title}}</b> {{.Text}}</div>
  {{end}}
  <div class="grid">
  {{range $row := .Rows}}
	{{range $row}}
	  <form hx-post="/game/{{$.ID}}/click" hx-target="#board" hx-swap="outerHTML" method="post">
		<input type="hidden" name="r" value="{{.Square.Row}}">
		<input type="hidden" name="c" value="{{.Square.Col}}">
		<button type="submit" class="{{.Terrain}} {{ownerClass .Unit}}{{if .Selected}} selected{{end}}">{{unitLabel .Unit}}</button>
	  </form>
	{{end}}
  {{end}}
  </div>
</div>
`

// cellView is one square as the board template draws it.
type cellView struct {
	Square   domain.Square
	Terrain  string
	Unit     domain.Unit
	Selected bool
}

type boardView struct {
	ID          string
	Rows        [domain.Size][domain.Size]cellView
	Active      string
	ActionsUsed int
	TowerHP     domain.TowerHealth
	Over        bool
	Winner      string
	Notices     []app.Notice
}

func newBoardView(gs app.GameState) boardView {
	snap := gs.Snapshot
	v := boardView{
		ID:          gs.ID,
		Active:      snap.Turn.Active.String(),
		ActionsUsed: snap.Turn.ActionsUsed,
		TowerHP:     snap.TowerHP,
		Over:        snap.Over,
		Winner:      snap.Winner.String(),
		Notices:     gs.Notices,
	}
	sel, hasSel := gs.Selected()
	for r := 0; r < domain.Size; r++ {
		for c := 0; c < domain.Size; c++ {
			sq := domain.Sq(r, c)
			v.Rows[r][c] = cellView{
				Square:   sq,
				Terrain:  snap.Terrain[r][c].String(),
				Unit:     snap.Cells[r][c],
				Selected: hasSel && sel == sq,
			}
		}
	}
	return v
}
