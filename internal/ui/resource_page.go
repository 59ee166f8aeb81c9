package ui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/logging"
	"github.com/kalpyotish/kalp-admin/internal/ui/components"
	"github.com/kalpyotish/kalp-admin/internal/workflow"
)

// --- Messages ---

// pageMsg is an async result addressed to one resource page.
type pageMsg interface {
	pageKind() api.ResourceKind
}

type recordsLoadedMsg struct {
	kind  api.ResourceKind
	items []api.Record
}

type recordsFailedMsg struct {
	kind api.ResourceKind
	err  error
}

type recordCreatedMsg struct {
	kind   api.ResourceKind
	draft  *workflow.Draft
	record *api.Record
	err    error
}

type recordRemovedMsg struct {
	kind api.ResourceKind
	id   string
	err  error
}

type approvalSavedMsg struct {
	kind  api.ResourceKind
	id    string
	value bool
	err   error
}

func (m recordsLoadedMsg) pageKind() api.ResourceKind { return m.kind }
func (m recordsFailedMsg) pageKind() api.ResourceKind { return m.kind }
func (m recordCreatedMsg) pageKind() api.ResourceKind { return m.kind }
func (m recordRemovedMsg) pageKind() api.ResourceKind { return m.kind }
func (m approvalSavedMsg) pageKind() api.ResourceKind { return m.kind }

// --- Reconciliation ---

type createStrategy int

const (
	// createPrepend puts the returned record first without refetching.
	createPrepend createStrategy = iota
	createRefetch
)

type deleteStrategy int

const (
	// deleteRemoveLocal drops the record once the server confirms.
	deleteRemoveLocal deleteStrategy = iota
	deleteRefetch
	// deleteOptimistic drops the record at once and restores it at its old
	// position if the server refuses.
	deleteOptimistic
)

type pageOptions struct {
	afterCreate  createStrategy
	afterDelete  deleteStrategy
	cards        bool
	createdToast string
	deletedToast string
}

var pageOptionsByKind = map[api.ResourceKind]pageOptions{
	api.Users: {},
	api.Astrologers: {
		afterCreate:  createPrepend,
		createdToast: "Astrologer added successfully!",
	},
	api.Products: {
		afterCreate:  createPrepend,
		afterDelete:  deleteOptimistic,
		createdToast: "Product added successfully!",
		deletedToast: "Product deleted successfully!",
	},
	api.Poojas: {
		afterCreate:  createRefetch,
		afterDelete:  deleteRefetch,
		cards:        true,
		createdToast: "Pooja added successfully!",
		deletedToast: "Pooja deleted successfully!",
	},
	api.Banners: {
		afterCreate:  createRefetch,
		afterDelete:  deleteRemoveLocal,
		cards:        true,
		createdToast: "Banners uploaded successfully!",
		deletedToast: "Banner deleted successfully!",
	},
}

type removal struct {
	record api.Record
	index  int
}

// --- Resource Page ---

// ResourcePage is the list, search, detail, and create screen shared by
// every resource family.
type ResourcePage struct {
	rc       *api.ResourceClient
	spec     api.Resource
	opts     pageOptions
	logger   *slog.Logger
	previews *workflow.Previews

	list      workflow.ListState[api.Record]
	items     []api.Record
	cursor    *components.List
	searchBuf string
	filtered  string
	searching bool

	modal  workflow.Modal[api.Record]
	detail detailState
	draft  *workflow.Draft
	form   formState

	toggles       map[string]workflow.Toggle
	removing      map[string]removal
	confirmDelete *api.Record
	toast         workflow.Toast

	width  int
	height int
}

// NewResourcePage builds the page for one resource family.
func NewResourcePage(client *api.Client, kind api.ResourceKind, previews *workflow.Previews, logger *slog.Logger) ResourcePage {
	spec := api.MustLookup(kind)
	if logger == nil {
		logger = logging.Discard()
	}
	if previews == nil {
		previews = workflow.NewPreviews()
	}
	return ResourcePage{
		rc:       client.Resource(spec),
		spec:     spec,
		opts:     pageOptionsByKind[kind],
		logger:   logger.With("page", string(kind)),
		previews: previews,
		list:     workflow.NewListState(func(r api.Record) string { return r.ID() }),
		cursor:   components.NewList(12),
		detail:   newDetailState(),
		toggles:  map[string]workflow.Toggle{},
		removing: map[string]removal{},
		toast:    workflow.NewToast(string(kind)),
	}
}

// Mount issues the page's list fetch unless one is already in flight.
func (m ResourcePage) Mount() (ResourcePage, tea.Cmd) {
	cmd := m.refetch()
	return m, cmd
}

// Unmount hides the toast and drops an idle create draft.
func (m ResourcePage) Unmount() ResourcePage {
	m.toast.Dismiss()
	m.confirmDelete = nil
	if m.modal.State() == workflow.ModalCreate {
		m.closeCreate()
	}
	m.modal.Close()
	return m
}

// Dispose releases every preview the page still holds.
func (m ResourcePage) Dispose() ResourcePage {
	m.toast.Stop()
	if m.draft != nil {
		m.draft.Dispose()
		m.draft = nil
	}
	return m
}

func (m *ResourcePage) refetch() tea.Cmd {
	if !m.list.Begin() {
		return nil
	}
	rc, kind := m.rc, m.spec.Kind
	return func() tea.Msg {
		items, err := rc.ListAll()
		if err != nil {
			return recordsFailedMsg{kind: kind, err: err}
		}
		return recordsLoadedMsg{kind: kind, items: items}
	}
}

func (m ResourcePage) Update(msg tea.Msg) (ResourcePage, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		m.list.Resolve(msg.items)
		m.applySearch()
		return m, nil
	case recordsFailedMsg:
		m.logger.Warn("list failed", "kind", api.KindOf(msg.err), "err", msg.err)
		m.list.Fail(msg.err.Error())
		m.applySearch()
		return m, nil
	case recordCreatedMsg:
		return m.handleCreated(msg)
	case recordRemovedMsg:
		return m.handleRemoved(msg)
	case approvalSavedMsg:
		return m.handleApprovalSaved(msg)
	case workflow.ToastExpiredMsg:
		m.toast.Expire(msg)
		return m, nil
	case tea.KeyMsg:
		if m.confirmDelete != nil {
			return m.handleConfirmKeys(msg)
		}
		switch m.modal.State() {
		case workflow.ModalCreate:
			return m.handleCreateKeys(msg)
		case workflow.ModalDetail:
			return m.handleDetailKeys(msg)
		}
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		return m.handleListKeys(msg)
	}
	return m, nil
}

func (m ResourcePage) View() string {
	var body string
	switch {
	case m.confirmDelete != nil:
		body = m.renderConfirmDelete()
	case m.modal.State() == workflow.ModalCreate:
		body = m.renderCreate()
	case m.modal.State() == workflow.ModalDetail:
		body = m.renderDetail()
	default:
		body = m.renderList()
	}
	if m.toast.Visible() {
		body += "\n\n" + renderToastBox(m.toast, m.width)
	}
	return components.Indent(body, 1)
}

// --- Search ---

func (m ResourcePage) displayName(rec api.Record) string {
	return rec.Text(m.spec.NameField)
}

func (m *ResourcePage) applySearch() {
	m.items = workflow.ApplyFilter(m.searchBuf, m.list.Items(), m.displayName)
	labels := make([]string, len(m.items))
	for i, rec := range m.items {
		labels[i] = components.SanitizeOneLine(m.displayName(rec))
	}
	// A new term starts from the top; a reload of the same term keeps the cursor.
	if m.searchBuf != m.filtered {
		m.filtered = m.searchBuf
		m.cursor.SetItems(labels)
		return
	}
	m.cursor.Replace(labels)
}

func (m ResourcePage) handleSearchKeys(msg tea.KeyMsg) (ResourcePage, tea.Cmd) {
	switch {
	case isEnter(msg), isDown(msg):
		m.searching = false
	case isBack(msg):
		m.searching = false
		m.searchBuf = ""
		m.applySearch()
	case isBackspace(msg):
		m.searchBuf = dropLastRune(m.searchBuf)
		m.applySearch()
	case isKey(msg, "ctrl+u"):
		m.searchBuf = ""
		m.applySearch()
	default:
		before := m.searchBuf
		appendChar(&m.searchBuf, msg)
		if m.searchBuf != before {
			m.applySearch()
		}
	}
	return m, nil
}

// --- List ---

func (m ResourcePage) selected() (api.Record, bool) {
	idx := m.cursor.Selected()
	if idx < 0 || idx >= len(m.items) {
		return api.Record{}, false
	}
	return m.items[idx], true
}

func (m ResourcePage) handleListKeys(msg tea.KeyMsg) (ResourcePage, tea.Cmd) {
	switch {
	case isDown(msg):
		m.cursor.Down()
	case isUp(msg):
		m.cursor.Up()
	case isSearch(msg):
		m.searching = true
	case isBack(msg):
		if m.searchBuf != "" {
			m.searchBuf = ""
			m.applySearch()
		}
	case isEnter(msg):
		if rec, ok := m.selected(); ok {
			m.openDetail(rec)
		}
	case isReload(msg):
		cmd := m.refetch()
		return m, cmd
	case isCreate(msg):
		m.openCreate()
	case isDelete(msg):
		if rec, ok := m.selected(); ok && m.spec.CanDelete() {
			m.confirmDelete = &rec
		}
	case isToggle(msg):
		if rec, ok := m.selected(); ok {
			return m.toggleApproval(rec)
		}
	}
	return m, nil
}

func (m ResourcePage) renderList() string {
	title := m.spec.Title
	switch m.list.Phase() {
	case workflow.PhaseIdle, workflow.PhaseLoading:
		if m.list.Len() == 0 {
			return components.TitledBox(title, MutedStyle.Render(fmt.Sprintf("Loading %s...", strings.ToLower(title))), m.width)
		}
	case workflow.PhaseError:
		if m.list.Len() == 0 {
			return components.ErrorBox("Error", m.list.Err(), m.width)
		}
	}

	countLine := fmt.Sprintf("%d total", m.list.Len())
	if m.searchBuf != "" || m.searching {
		countLine = fmt.Sprintf("%s · %d shown · search: %s", countLine, len(m.items), m.searchBuf)
	}
	if m.list.Phase() == workflow.PhaseLoading {
		countLine += " · refreshing"
	}
	header := MutedStyle.Render(countLine)
	if m.searching {
		header = SelectedStyle.Render("/ "+m.searchBuf) + AccentStyle.Render("█") + "  " + header
	}
	if m.list.Phase() == workflow.PhaseError {
		header += "\n" + ErrorStyle.Render(m.list.Err())
	}

	if len(m.items) == 0 {
		msg := fmt.Sprintf("No %s found.", strings.ToLower(title))
		hints := []string{"Press r to reload"}
		if m.spec.CanCreate() {
			hints = append(hints, "Press n to add one")
		}
		return header + "\n\n" + components.EmptyStateBox(title, msg, hints, m.width)
	}

	var body string
	if m.opts.cards {
		body = m.renderCards()
	} else {
		body = m.renderTable()
	}
	return components.TitledBox(title, header+"\n\n"+body+"\n", m.width)
}

func (m ResourcePage) renderTable() string {
	contentWidth := components.BoxContentWidth(m.width)
	if contentWidth <= 0 {
		contentWidth = 80
	}
	previewWidth := preferredPreviewWidth(contentWidth)
	gap := 3
	tableWidth := contentWidth
	sideBySide := contentWidth >= 110
	if sideBySide {
		tableWidth = contentWidth - previewWidth - gap
		if tableWidth < 60 {
			sideBySide = false
			tableWidth = contentWidth
		}
	}
	cols := m.tableColumns(tableWidth)
	visible := m.cursor.Visible()
	rows := make([][]string, 0, len(visible))
	active := -1
	for i := range visible {
		abs := m.cursor.RelToAbs(i)
		if abs < 0 || abs >= len(m.items) {
			continue
		}
		if m.cursor.IsSelected(abs) {
			active = len(rows)
		}
		rows = append(rows, m.tableRow(m.items[abs]))
	}
	table := components.Grid(cols, rows, tableWidth, active)

	rec, ok := m.selected()
	if !ok {
		return table
	}
	preview := renderPreviewBox(renderRecordPreview(rec, m.spec.NameField, previewBoxContentWidth(previewWidth)), previewWidth)
	if sideBySide {
		return lipgloss.JoinHorizontal(lipgloss.Top, table, strings.Repeat(" ", gap), preview)
	}
	return table + "\n\n" + preview
}

// tableColumns is the flexible name column plus one secondary field and, for
// families with approval, a status column.
func (m ResourcePage) tableColumns(width int) []components.GridColumn {
	cols := []components.GridColumn{
		{Header: "Name", Align: lipgloss.Left},
		{Header: humanizeKey(m.secondaryField()), Width: width / 3, Align: lipgloss.Left},
	}
	if m.spec.HasApproval() {
		cols = append(cols, components.GridColumn{Header: "Status", Width: 8, Align: lipgloss.Left, Status: true})
	}
	return cols
}

func (m ResourcePage) secondaryField() string {
	switch m.spec.Kind {
	case api.Users, api.Astrologers:
		return "email"
	case api.Products:
		return "price"
	}
	return "description"
}

func (m ResourcePage) tableRow(rec api.Record) []string {
	secondary, _ := rec.Get(m.secondaryField())
	value, _ := displayValue(secondary)
	row := []string{m.displayName(rec), value}
	if m.spec.HasApproval() {
		on, pending := m.statusOf(rec)
		label := "Off"
		if on {
			label = "On"
		}
		if pending {
			label += " …"
		}
		row = append(row, label)
	}
	return row
}

// renderCards lays records out as tiles, grouped under their category when
// the list payload was grouped.
func (m ResourcePage) renderCards() string {
	contentWidth := components.BoxContentWidth(m.width)
	if contentWidth <= 0 {
		contentWidth = 80
	}
	cardWidth := 26
	var sections []string
	var cards []string
	group := ""
	flush := func() {
		if len(cards) == 0 {
			return
		}
		grid := components.CardGrid(cards, contentWidth)
		if group != "" {
			grid = GroupBadgeStyle.Render(components.SanitizeOneLine(group)) + "\n" + grid
		}
		sections = append(sections, grid)
		cards = nil
	}
	for i, rec := range m.items {
		if rec.Group != group {
			flush()
			group = rec.Group
		}
		title := components.SanitizeOneLine(m.displayName(rec))
		body := m.cardBody(rec)
		cards = append(cards, components.Card(title, body, cardWidth, m.cursor.IsSelected(i)))
	}
	flush()
	return strings.Join(sections, "\n\n")
}

func (m ResourcePage) cardBody(rec api.Record) string {
	switch m.spec.Kind {
	case api.Banners:
		images, _ := rec.Get("images")
		n := len(images.List)
		if n == 0 {
			if v, ok := rec.Get("image"); ok && !v.IsEmpty() {
				n = 1
			}
		}
		return fmt.Sprintf("%d image(s)", n)
	}
	v, _ := rec.Get("description")
	text, _ := displayValue(v)
	return text
}

// --- Detail ---

func (m *ResourcePage) openDetail(rec api.Record) {
	if m.modal.State() == workflow.ModalCreate {
		m.closeCreate()
	}
	m.modal.OpenDetail(rec)
	m.detail = newDetailState()
}

func (m ResourcePage) handleDetailKeys(msg tea.KeyMsg) (ResourcePage, tea.Cmd) {
	rec, _ := m.modal.Payload()
	rows := detailRows(rec, m.detail.expanded)
	switch {
	case isBack(msg):
		m.modal.Close()
	case isDown(msg):
		if m.detail.cursor < len(rows)-1 {
			m.detail.cursor++
		}
	case isUp(msg):
		if m.detail.cursor > 0 {
			m.detail.cursor--
		}
	case isEnter(msg):
		if m.detail.cursor < len(rows) && rows[m.detail.cursor].nested {
			path := rows[m.detail.cursor].path
			m.detail.expanded[path] = !m.detail.expanded[path]
		}
	case isCreate(msg):
		m.openCreate()
	case isDelete(msg):
		if m.spec.CanDelete() {
			m.confirmDelete = &rec
		}
	case isToggle(msg):
		return m.toggleApproval(rec)
	}
	return m, nil
}

// --- Approval ---

func (m ResourcePage) statusOf(rec api.Record) (on, pending bool) {
	if tg, ok := m.toggles[rec.ID()]; ok {
		return tg.On(), tg.Pending()
	}
	return m.spec.Status(rec), false
}

func (m ResourcePage) toggleApproval(rec api.Record) (ResourcePage, tea.Cmd) {
	if !m.spec.HasApproval() {
		return m, nil
	}
	id := rec.ID()
	tg, ok := m.toggles[id]
	if !ok {
		tg = workflow.NewToggle(m.spec.Status(rec))
	}
	value, ok := tg.Activate()
	if !ok {
		return m, nil
	}
	m.toggles[id] = tg
	m.applySearch()

	rc, kind := m.rc, m.spec.Kind
	return m, func() tea.Msg {
		err := rc.SetApproval(id, value)
		return approvalSavedMsg{kind: kind, id: id, value: value, err: err}
	}
}

func (m ResourcePage) handleApprovalSaved(msg approvalSavedMsg) (ResourcePage, tea.Cmd) {
	tg, ok := m.toggles[msg.id]
	if !ok {
		return m, nil
	}
	delete(m.toggles, msg.id)
	if msg.err != nil {
		tg.Reject()
		m.logger.Warn("approval failed", "id", msg.id, "kind", api.KindOf(msg.err), "err", msg.err)
		cmd := m.toast.Show(msg.err.Error(), workflow.ToastError)
		return m, cmd
	}
	tg.Confirm()
	field, value := m.spec.StatusField, api.Bool(tg.On())
	m.list.Update(msg.id, func(r api.Record) api.Record { return r.With(field, value) })
	if rec, ok := m.modal.Payload(); ok && rec.ID() == msg.id {
		m.modal.OpenDetail(rec.With(field, value))
	}
	m.applySearch()
	if m.spec.ApprovalIsLocal() {
		m.logger.Info("status changed locally", "id", msg.id, "value", msg.value)
		return m, nil
	}
	word := "disabled"
	if msg.value {
		word = "approved"
	}
	cmd := m.toast.Show(fmt.Sprintf("%s %s.", m.spec.Singular, word), workflow.ToastSuccess)
	return m, cmd
}

// --- Delete ---

func (m ResourcePage) handleConfirmKeys(msg tea.KeyMsg) (ResourcePage, tea.Cmd) {
	switch {
	case isConfirm(msg):
		rec := *m.confirmDelete
		m.confirmDelete = nil
		return m.remove(rec)
	case isDecline(msg):
		m.confirmDelete = nil
	}
	return m, nil
}

func (m ResourcePage) renderConfirmDelete() string {
	rec := *m.confirmDelete
	rows := []components.TableRow{{Label: "ID", Value: rec.ID()}}
	if name := m.displayName(rec); name != "" && m.spec.NameField != "_id" {
		rows = append(rows, components.TableRow{Label: "Name", Value: name})
	}
	if rec.Group != "" {
		rows = append(rows, components.TableRow{Label: "Category", Value: rec.Group})
	}
	return components.ConfirmPreviewDialog("Delete "+m.spec.Singular, rows, m.width)
}

func (m ResourcePage) remove(rec api.Record) (ResourcePage, tea.Cmd) {
	id := rec.ID()
	if m.opts.afterDelete == deleteOptimistic {
		removed, index, ok := m.list.RemoveByID(id)
		if ok {
			m.removing[id] = removal{record: removed, index: index}
			m.applySearch()
		}
	}
	if cur, ok := m.modal.Payload(); ok && cur.ID() == id {
		m.modal.Close()
	}
	rc, kind := m.rc, m.spec.Kind
	return m, func() tea.Msg {
		return recordRemovedMsg{kind: kind, id: id, err: rc.Remove(id)}
	}
}

func (m ResourcePage) handleRemoved(msg recordRemovedMsg) (ResourcePage, tea.Cmd) {
	pending, optimistic := m.removing[msg.id]
	delete(m.removing, msg.id)
	if msg.err != nil {
		// A reload during the request may already have brought it back.
		if _, present := m.list.Find(msg.id); optimistic && !present {
			m.list.Insert(pending.index, pending.record)
			m.applySearch()
		}
		m.logger.Warn("delete failed", "id", msg.id, "kind", api.KindOf(msg.err), "err", msg.err)
		cmd := m.toast.Show(msg.err.Error(), workflow.ToastError)
		return m, cmd
	}

	var cmds []tea.Cmd
	switch m.opts.afterDelete {
	case deleteRefetch:
		cmds = append(cmds, m.refetch())
	case deleteRemoveLocal, deleteOptimistic:
		m.list.RemoveByID(msg.id)
		m.applySearch()
	}
	text := m.opts.deletedToast
	if text == "" {
		text = m.spec.Singular + " deleted successfully!"
	}
	cmds = append(cmds, m.toast.Show(text, workflow.ToastSuccess))
	return m, tea.Batch(cmds...)
}

// --- Create ---

func (m *ResourcePage) openCreate() {
	if !m.spec.CanCreate() {
		return
	}
	if m.modal.State() == workflow.ModalCreate {
		return
	}
	m.modal.OpenCreate()
	m.draft = workflow.NewDraft(m.spec.Form, m.previews)
	m.form = formState{}
}

// closeCreate hides the create modal. A draft with a submission in flight
// stays alive until that submission completes.
func (m *ResourcePage) closeCreate() {
	if m.draft != nil && !m.draft.Submitting() {
		m.draft.Dispose()
	}
	m.draft = nil
	m.form = formState{}
	m.modal.Close()
}

func (m ResourcePage) submit() (ResourcePage, tea.Cmd) {
	draft := m.draft
	if draft == nil {
		return m, nil
	}
	form, err := draft.Begin()
	if err != nil {
		// Validation errors stay on the draft and render inline.
		return m, nil
	}
	rc, kind := m.rc, m.spec.Kind
	return m, func() tea.Msg {
		rec, err := rc.Create(form)
		return recordCreatedMsg{kind: kind, draft: draft, record: rec, err: err}
	}
}

func (m ResourcePage) handleCreated(msg recordCreatedMsg) (ResourcePage, tea.Cmd) {
	msg.draft.Finish(msg.err)
	if msg.err != nil {
		m.logger.Warn("create failed", "kind", api.KindOf(msg.err), "err", msg.err)
		if m.draft != msg.draft {
			msg.draft.Dispose()
		}
		cmd := m.toast.Show(msg.err.Error(), workflow.ToastError)
		return m, cmd
	}

	msg.draft.Dispose()
	if m.draft == msg.draft {
		m.draft = nil
		m.form = formState{}
		m.modal.Close()
	}

	var cmds []tea.Cmd
	if m.opts.afterCreate == createPrepend && msg.record != nil && msg.record.Fields.Len() > 0 {
		m.list.Prepend(*msg.record)
		m.applySearch()
	} else {
		cmds = append(cmds, m.refetch())
	}
	text := m.opts.createdToast
	if text == "" {
		text = m.spec.Singular + " added successfully!"
	}
	cmds = append(cmds, m.toast.Show(text, workflow.ToastSuccess))
	return m, tea.Batch(cmds...)
}

// --- Hints ---

func (m ResourcePage) hints() []string {
	if m.confirmDelete != nil {
		return []string{components.Hint("y", "Delete"), components.Hint("n", "Cancel")}
	}
	switch m.modal.State() {
	case workflow.ModalCreate:
		return []string{
			components.Hint("↑/↓", "Fields"),
			components.Hint("enter", "Add"),
			components.Hint("ctrl+x", "Remove File"),
			components.Hint("ctrl+s", "Submit"),
			components.Hint("esc", "Close"),
		}
	case workflow.ModalDetail:
		hints := []string{components.Hint("↑/↓", "Fields"), components.Hint("enter", "Expand")}
		if m.spec.HasApproval() {
			hints = append(hints, components.Hint("t", "Toggle"))
		}
		if m.spec.CanDelete() {
			hints = append(hints, components.Hint("d", "Delete"))
		}
		return append(hints, components.Hint("esc", "Close"))
	}
	if m.searching {
		return []string{components.Hint("enter", "Apply"), components.Hint("esc", "Clear")}
	}
	hints := []string{
		components.Hint("↑/↓", "Scroll"),
		components.Hint("enter", "Details"),
		components.Hint("/", "Search"),
		components.Hint("r", "Reload"),
	}
	if m.spec.CanCreate() {
		hints = append(hints, components.Hint("n", "New"))
	}
	if m.spec.HasApproval() {
		hints = append(hints, components.Hint("t", "Toggle"))
	}
	if m.spec.CanDelete() {
		hints = append(hints, components.Hint("d", "Delete"))
	}
	return hints
}

// capturesKeys reports whether the page is in a text-entry or modal state
// where global shortcuts must not fire.
func (m ResourcePage) capturesKeys() bool {
	return m.searching || m.confirmDelete != nil || m.modal.IsOpen()
}

// hasUnsaved reports a create draft with entered values.
func (m ResourcePage) hasUnsaved() bool {
	if m.draft == nil {
		return false
	}
	if m.draft.Submitting() || len(m.draft.Files()) > 0 {
		return true
	}
	for _, f := range m.spec.Form.Fields {
		if strings.TrimSpace(m.draft.Field(f.Name)) != "" || len(m.draft.List(f.Name)) > 0 {
			return true
		}
	}
	return false
}
