package console

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/madik/projectdesk/internal/model"
)

// RowState is the per-row edit lifecycle of the project list.
type RowState string

const (
	RowViewing RowState = "VIEWING"
	RowEditing RowState = "EDITING"
	RowSaving  RowState = "SAVING"
)

const FilterAll = "ALL"

// ProjectListView holds the fetched project collection and the list
// screen's state: type filter, search text, the single row in edit
// mode (with its draft), and the single expanded row. The collection
// is owned by the view for its lifetime; other views refetch
// independently.
type ProjectListView struct {
	env Env

	projects   []model.Project
	filterType string
	search     string

	editID     int64
	draft      *model.Project
	savingID   int64
	expandedID int64
}

func NewProjectListView(env Env) *ProjectListView {
	return &ProjectListView{env: env, filterType: FilterAll}
}

// Load fetches the whole collection once; there is no pagination.
func (v *ProjectListView) Load(ctx context.Context) error {
	projects, err := v.env.API.ListProjects(ctx)
	if err != nil {
		v.env.handleRequestError(err, "Failed to fetch projects")
		return err
	}
	v.projects = projects
	v.editID, v.draft, v.savingID, v.expandedID = 0, nil, 0, 0
	return nil
}

func (v *ProjectListView) Projects() []model.Project { return v.projects }

func (v *ProjectListView) SetFilterType(filterType string) {
	filterType = strings.ToUpper(strings.TrimSpace(filterType))
	if filterType == "" {
		filterType = FilterAll
	}
	v.filterType = filterType
}

func (v *ProjectListView) SetSearch(search string) {
	v.search = search
}

// Visible applies the type filter and the case-insensitive search: a
// project passes when its type matches AND its stringified id contains
// the search text, or any type-appropriate name/phone contains it.
func (v *ProjectListView) Visible() []model.Project {
	search := strings.ToLower(v.search)
	var visible []model.Project
	for i := range v.projects {
		p := &v.projects[i]
		if v.filterType != FilterAll && string(p.ProjectType) != v.filterType {
			continue
		}
		if matchesSearch(p, search) {
			visible = append(visible, *p)
		}
	}
	return visible
}

func matchesSearch(p *model.Project, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strconv.FormatInt(p.ID, 10), search) {
		return true
	}
	if p.ProjectType == model.ProjectTypeStudent {
		for _, s := range p.Students {
			if containsFold(s.Name, search) || containsFold(s.Phone, search) {
				return true
			}
		}
		return false
	}
	if p.Client == nil {
		return false
	}
	return containsFold(p.Client.Name, search) || containsFold(p.Client.Phone, search)
}

func containsFold(value, search string) bool {
	return strings.Contains(strings.ToLower(value), search)
}

// State reports the row's position in the {Viewing, Editing, Saving}
// machine.
func (v *ProjectListView) State(id int64) RowState {
	if id != 0 && id == v.savingID {
		return RowSaving
	}
	if id != 0 && id == v.editID {
		return RowEditing
	}
	return RowViewing
}

// Edit enters edit mode on a row. The transition is refused while
// another row is Editing or Saving, and the draft is a deep copy so
// Cancel restores the fetched state exactly.
func (v *ProjectListView) Edit(id int64) error {
	if v.savingID != 0 {
		return ErrRowBusy
	}
	if v.editID != 0 && v.editID != id {
		return ErrEditInProgress
	}

	for i := range v.projects {
		if v.projects[i].ID == id {
			draft, err := cloneProject(v.projects[i])
			if err != nil {
				return err
			}
			v.editID = id
			v.draft = draft
			return nil
		}
	}
	return ErrUnknownProject
}

// Draft exposes the in-progress copy for field edits.
func (v *ProjectListView) Draft() *model.Project { return v.draft }

// Cancel discards the draft; the row reverts to the last fetched state.
func (v *ProjectListView) Cancel() {
	v.editID = 0
	v.draft = nil
}

// Save submits the whole edited record. The server's returned
// representation replaces the local entry: the server is authoritative
// after an update.
func (v *ProjectListView) Save(ctx context.Context) error {
	if v.editID == 0 || v.draft == nil {
		return ErrNoEdit
	}
	if v.savingID != 0 {
		return ErrRowBusy
	}

	payload := *v.draft
	if payload.Students == nil {
		payload.Students = []model.Student{}
	}
	if payload.Guides == nil {
		payload.Guides = []model.Guide{}
	}
	if payload.Payments == nil {
		payload.Payments = []model.Payment{}
	}

	v.savingID = v.editID
	updated, err := v.env.API.UpdateProject(ctx, v.editID, payload)
	v.savingID = 0
	if err != nil {
		v.env.handleRequestError(err, "Update failed")
		return err
	}

	for i := range v.projects {
		if v.projects[i].ID == updated.ID {
			v.projects[i] = *updated
			break
		}
	}
	v.env.Notify.Success("Project updated successfully")
	v.editID = 0
	v.draft = nil
	return nil
}

// Delete asks for confirmation, deletes remotely and removes the entry
// from local state without refetching.
func (v *ProjectListView) Delete(ctx context.Context, id int64) error {
	if !v.env.Confirm.Confirm("Delete this project?") {
		return nil
	}

	if err := v.env.API.DeleteProject(ctx, id); err != nil {
		v.env.handleRequestError(err, "Delete failed")
		return err
	}

	kept := v.projects[:0]
	for _, p := range v.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	v.projects = kept
	if v.editID == id {
		v.Cancel()
	}
	if v.expandedID == id {
		v.expandedID = 0
	}
	v.env.Notify.Success("Project deleted")
	return nil
}

// ToggleExpand shows full nested detail for at most one project at a
// time, independent of edit mode.
func (v *ProjectListView) ToggleExpand(id int64) {
	if v.expandedID == id {
		v.expandedID = 0
		return
	}
	v.expandedID = id
}

func (v *ProjectListView) Expanded() int64 { return v.expandedID }

// cloneProject deep-copies via a JSON round trip so the draft shares no
// nested state with the fetched entry.
func cloneProject(p model.Project) (*model.Project, error) {
	encoded, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var clone model.Project
	if err := json.Unmarshal(encoded, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}
