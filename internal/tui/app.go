package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/squadhq/squadtui/internal/config"
	"github.com/squadhq/squadtui/internal/database/repository"
	"github.com/squadhq/squadtui/internal/modal"
)

// App is the Modal Host: it owns which modal is currently shown, mounts
// renderers obtained through the deferred loader, and injects the visible
// and close lifecycle fields renderers declare but callers never supply.
// One overlay is active at a time; opening another replaces it.
type App struct {
	ctx      context.Context
	cfg      config.Config
	registry *modal.Registry
	loader   *modal.Loader
	repos    Repos

	view        appView
	posts       []repository.Post
	squads      []repository.Squad
	postCursor  int
	squadCursor int
	width       int
	height      int
	status      string

	prompting bool
	prompt    string

	overlay    tea.Model
	overlayVar modal.Variant
	retryReq   *modal.Request
	// pendingID is the id of the most recent open intent. Ready/failed
	// messages from loads the user has since moved past are dropped.
	pendingID string
}

// Repos are the data collaborators the feed and squad views read from.
type Repos struct {
	Posts   *repository.PostRepo
	Squads  *repository.SquadRepo
	Upvotes *repository.UpvoteRepo
	Reports *repository.ReportRepo
}

type appView string

const (
	viewFeed   appView = "feed"
	viewSquads appView = "squads"
)

func New(ctx context.Context, cfg config.Config, registry *modal.Registry, loader *modal.Loader, repos Repos) *App {
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		registry: registry,
		loader:   loader,
		repos:    repos,
		view:     viewFeed,
		width:    80,
		height:   24,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadPosts(), a.loadSquads())
}

func (a *App) loadPosts() tea.Cmd {
	return func() tea.Msg {
		posts, err := a.repos.Posts.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return postsMsg(posts)
	}
}

func (a *App) loadSquads() tea.Cmd {
	return func() tea.Msg {
		squads, err := a.repos.Squads.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return squadsMsg(squads)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case postsMsg:
		a.posts = []repository.Post(msg)
		if a.postCursor >= len(a.posts) {
			a.postCursor = 0
		}
		return a, nil
	case squadsMsg:
		a.squads = []repository.Squad(msg)
		if a.squadCursor >= len(a.squads) {
			a.squadCursor = 0
		}
		return a, nil
	case statusMsg:
		a.status = string(msg)
		return a, nil
	case errMsg:
		a.status = "error: " + msg.Error()
		return a, nil
	case modalReadyMsg:
		return a.mountModal(msg)
	case modalLoadFailedMsg:
		if msg.req.ID() != a.pendingID {
			return a, nil
		}
		req := msg.req
		a.retryReq = &req
		a.status = fmt.Sprintf("%v - [r] retry", msg.err)
		return a, nil
	case modalClosedMsg:
		a.overlay = nil
		a.overlayVar = ""
		// renderers may have written through the repositories
		return a, tea.Batch(a.loadPosts(), a.loadSquads())
	case tea.KeyMsg:
		if a.overlay != nil {
			return a.routeToOverlay(msg)
		}
		if a.prompting {
			return a.handlePromptKey(msg)
		}
		return a.handleKey(msg)
	}
	if a.overlay != nil {
		// async messages produced by the mounted renderer's own commands
		return a.routeToOverlay(msg)
	}
	return a, nil
}

func (a *App) routeToOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	overlay, cmd := a.overlay.Update(msg)
	a.overlay = overlay
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "tab", "s":
		if a.view == viewFeed {
			a.view = viewSquads
		} else {
			a.view = viewFeed
		}
		a.status = ""
	case "up", "k":
		if a.view == viewFeed && a.postCursor > 0 {
			a.postCursor--
		}
		if a.view == viewSquads && a.squadCursor > 0 {
			a.squadCursor--
		}
	case "down", "j":
		if a.view == viewFeed && a.postCursor < len(a.posts)-1 {
			a.postCursor++
		}
		if a.view == viewSquads && a.squadCursor < len(a.squads)-1 {
			a.squadCursor++
		}
	case "u":
		if post := a.selectedPost(); post != nil {
			return a, a.upvoteCmd(post.ID)
		}
	case "U":
		if post := a.selectedPost(); post != nil {
			return a, a.openModal(modal.VariantUpvotedPopup, modal.Payload{"postId": post.ID})
		}
	case "R":
		if post := a.selectedPost(); post != nil {
			return a, a.openModal(modal.VariantReportPost, modal.Payload{"postId": post.ID})
		}
	case "m":
		if squad := a.selectedSquad(); squad != nil {
			return a, a.openModal(modal.VariantSquadMember, modal.Payload{"squadId": squad.ID})
		}
	case "n":
		return a, a.openModal(modal.VariantNewSquad, modal.Payload{"origin": string(a.view)})
	case "t":
		return a, a.openModal(modal.VariantSquadTour, nil)
	case ":":
		a.prompting = true
		a.prompt = ""
		a.status = ""
	case "r":
		if a.retryReq != nil {
			req := *a.retryReq
			a.pendingID = req.ID()
			a.status = "loading..."
			return a, a.resolveCmd(req)
		}
	}
	return a, nil
}

// handlePromptKey edits the open-by-name prompt entered with ":".
func (a *App) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.prompting = false
		a.prompt = ""
	case tea.KeyEnter:
		name := strings.TrimSpace(a.prompt)
		a.prompting = false
		a.prompt = ""
		if name == "" {
			return a, nil
		}
		return a, a.openByName(name)
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		a.prompt = trimLastRune(a.prompt)
	case tea.KeyRunes:
		a.prompt += string(msg.Runes)
	}
	return a, nil
}

// openByName resolves a typed variant name, surfacing the parser's
// nearest-match hint on typos, and fills the payload from the current
// selection the same way the direct key bindings do.
func (a *App) openByName(name string) tea.Cmd {
	v, err := modal.ParseVariant(name)
	if err != nil {
		a.status = err.Error()
		return nil
	}
	switch v {
	case modal.VariantReportPost, modal.VariantUpvotedPopup:
		post := a.selectedPost()
		if post == nil {
			a.status = "select a post first"
			return nil
		}
		return a.openModal(v, modal.Payload{"postId": post.ID})
	case modal.VariantSquadMember:
		squad := a.selectedSquad()
		if squad == nil {
			a.status = "select a squad first"
			return nil
		}
		return a.openModal(v, modal.Payload{"squadId": squad.ID})
	case modal.VariantNewSquad:
		return a.openModal(v, modal.Payload{"origin": string(a.view)})
	default:
		return a.openModal(v, nil)
	}
}

// openModal validates the request and kicks off the deferred load. A
// ContractViolation here is a programming mistake at this call site, so it
// lands on the status line instead of being retried.
func (a *App) openModal(v modal.Variant, payload modal.Payload) tea.Cmd {
	req, err := a.registry.BuildRequest(v, payload)
	if err != nil {
		a.status = "bug: " + err.Error()
		return nil
	}
	a.retryReq = nil
	a.pendingID = req.ID()
	a.status = "loading..."
	return a.resolveCmd(req)
}

// resolveCmd obtains the renderer off the update loop. Loading suspends the
// command goroutine, never the UI; the memoized path returns immediately.
func (a *App) resolveCmd(req modal.Request) tea.Cmd {
	return func() tea.Msg {
		renderer, err := a.loader.Load(a.ctx, req.Variant())
		if err != nil {
			return modalLoadFailedMsg{req: req, err: err}
		}
		return modalReadyMsg{req: req, renderer: renderer}
	}
}

// mountModal hands the validated payload to the renderer along with the two
// injected lifecycle fields. Renderers that resolved after the user opened
// something else are dropped rather than clobbering the newer modal.
func (a *App) mountModal(msg modalReadyMsg) (tea.Model, tea.Cmd) {
	if msg.req.ID() != a.pendingID {
		return a, nil
	}
	props := modal.Props{}
	for k, v := range msg.req.Payload() {
		props[k] = v
	}
	props[modal.FieldVisible] = true
	props[modal.FieldClose] = modal.CloseFunc(func() tea.Msg { return modalClosedMsg{} })

	model, err := msg.renderer.Mount(props)
	if err != nil {
		a.status = "bug: " + err.Error()
		return a, nil
	}
	a.overlay = model
	a.overlayVar = msg.req.Variant()
	a.retryReq = nil
	a.status = ""
	return a, model.Init()
}

func (a *App) upvoteCmd(postID string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			up := repository.Upvote{ID: uuid.NewString(), PostID: postID, Username: a.cfg.UI.Username}
			if err := a.repos.Upvotes.Add(a.ctx, up); err != nil {
				return errMsg{err}
			}
			return statusMsg("upvoted")
		},
		a.loadPosts(),
	)
}

func (a *App) selectedPost() *repository.Post {
	if a.view != viewFeed || len(a.posts) == 0 {
		return nil
	}
	return &a.posts[a.postCursor]
}

func (a *App) selectedSquad() *repository.Squad {
	if a.view != viewSquads || len(a.squads) == 0 {
		return nil
	}
	return &a.squads[a.squadCursor]
}

// activeVariant reports the mounted modal's variant, "" when none is open.
func (a *App) activeVariant() modal.Variant {
	if a.overlay == nil {
		return ""
	}
	return a.overlayVar
}

// messages
type postsMsg []repository.Post

type squadsMsg []repository.Squad

type statusMsg string

type errMsg struct{ error }

type modalReadyMsg struct {
	req      modal.Request
	renderer modal.Renderer
}

type modalLoadFailedMsg struct {
	req modal.Request
	err error
}

type modalClosedMsg struct{}

// styles
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (a *App) View() string {
	var body string
	switch a.view {
	case viewSquads:
		body = a.renderSquads()
	default:
		body = a.renderFeed()
	}
	if a.prompting {
		body += "\n:" + a.prompt + "▌"
	}
	if a.status != "" {
		body += "\n" + a.status
	}
	if a.overlay != nil {
		return overlayCentered(body, boxStyle.Render(a.overlay.View()), a.width, a.height)
	}
	return body
}

func (a *App) renderFeed() string {
	out := titleStyle.Render("Feed") + "\n"
	if len(a.posts) == 0 {
		out += dimStyle.Render("(no posts)") + "\n"
	}
	for i, p := range a.posts {
		marker := " "
		if i == a.postCursor {
			marker = "▶"
		}
		title := truncate(p.Title, a.width-30)
		out += fmt.Sprintf("%s %-3d▲  %s  %s\n", marker, p.Upvotes, title, dimStyle.Render("by "+p.Author))
	}
	out += dimStyle.Render("[u] Upvote  [U] Upvoters  [R] Report  [n] New squad  [t] Tour  [:] Open by name  [tab] Squads  [q] Quit")
	return out
}

func (a *App) renderSquads() string {
	out := titleStyle.Render("Squads") + "\n"
	if len(a.squads) == 0 {
		out += dimStyle.Render("(no squads)") + "\n"
	}
	for i, s := range a.squads {
		marker := " "
		if i == a.squadCursor {
			marker = "▶"
		}
		desc := ""
		if s.Description != nil {
			desc = "  " + dimStyle.Render(truncate(*s.Description, a.width-40))
		}
		out += fmt.Sprintf("%s @%-16s %s%s\n", marker, s.Handle, s.Name, desc)
	}
	out += dimStyle.Render("[m] Members  [n] New squad  [t] Tour  [:] Open by name  [tab] Feed  [q] Quit")
	return out
}
