package project

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/domain"
	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

type fakeProjectStore struct {
	docs             map[string]*domain.Project // key ownerID/projectID
	titleExistsCalls int
	replaceCalls     int
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{docs: make(map[string]*domain.Project)}
}

func key(owner domain.UserID, id string) string { return owner.String() + "/" + id }

func (s *fakeProjectStore) Find(_ context.Context, owner domain.UserID, id string) (*domain.Project, error) {
	p, ok := s.docs[key(owner, id)]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProjectStore) TitleExists(_ context.Context, owner domain.UserID, title, excludeID string) (bool, error) {
	s.titleExistsCalls++
	for _, p := range s.docs {
		if p.OwnerID == owner && p.ProjectID != excludeID && strings.EqualFold(strings.TrimSpace(p.Title), strings.TrimSpace(title)) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeProjectStore) Insert(_ context.Context, p *domain.Project) error {
	cp := *p
	s.docs[key(p.OwnerID, p.ProjectID)] = &cp
	return nil
}

func (s *fakeProjectStore) Replace(_ context.Context, p *domain.Project) error {
	s.replaceCalls++
	cp := *p
	s.docs[key(p.OwnerID, p.ProjectID)] = &cp
	return nil
}

func (s *fakeProjectStore) ListByOwner(_ context.Context, owner domain.UserID) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range s.docs {
		if p.OwnerID == owner {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeProjectStore) Delete(_ context.Context, owner domain.UserID, id string) (bool, error) {
	k := key(owner, id)
	if _, ok := s.docs[k]; !ok {
		return false, nil
	}
	delete(s.docs, k)
	return true, nil
}

var _ ports.ProjectStore = (*fakeProjectStore)(nil)

func owner() domain.UserID { return domain.NewUserID(uuid.New()) }

func TestCreateProjectAssignsSequentialIDs(t *testing.T) {
	store := newFakeProjectStore()
	uc := NewCreateProject(store)
	u := owner()

	first, err := uc.Execute(context.Background(), CreateProjectInput{OwnerID: u, Title: "Alpha"})
	require.NoError(t, err)
	assert.Equal(t, "1", first.Project.ProjectID)
	assert.Equal(t, domain.StatusDraft, first.Project.Status)

	second, err := uc.Execute(context.Background(), CreateProjectInput{OwnerID: u, Title: "Beta"})
	require.NoError(t, err)
	assert.Equal(t, "2", second.Project.ProjectID)

	// Ids are per-owner.
	other, err := uc.Execute(context.Background(), CreateProjectInput{OwnerID: owner(), Title: "Alpha"})
	require.NoError(t, err)
	assert.Equal(t, "1", other.Project.ProjectID)
}

func TestCreateProjectNextIDSkipsGaps(t *testing.T) {
	store := newFakeProjectStore()
	u := owner()
	store.docs[key(u, "7")] = &domain.Project{ProjectID: "7", OwnerID: u, Title: "Seven", CreatedAt: time.Now()}

	res, err := NewCreateProject(store).Execute(context.Background(), CreateProjectInput{OwnerID: u, Title: "Eight"})
	require.NoError(t, err)
	assert.Equal(t, "8", res.Project.ProjectID)
}

func TestCreateProjectTitleConflictCaseInsensitive(t *testing.T) {
	store := newFakeProjectStore()
	uc := NewCreateProject(store)
	u := owner()

	_, err := uc.Execute(context.Background(), CreateProjectInput{OwnerID: u, Title: "Alpha"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreateProjectInput{OwnerID: u, Title: "alpha"})
	assert.ErrorIs(t, err, domerrors.ErrTitleExists)
}

func TestCreateProjectValidation(t *testing.T) {
	uc := NewCreateProject(newFakeProjectStore())

	_, err := uc.Execute(context.Background(), CreateProjectInput{OwnerID: owner(), Title: "   "})
	assert.True(t, domerrors.IsValidation(err))

	_, err = uc.Execute(context.Background(), CreateProjectInput{
		OwnerID:     owner(),
		Title:       "Ok",
		ColorConfig: map[string]any{"goal": map[string]any{"shapeColor": "#000"}},
	})
	assert.True(t, domerrors.IsValidation(err), "colorConfig missing textColor must fail")
}

func TestCreateProjectFillsDefaults(t *testing.T) {
	uc := NewCreateProject(newFakeProjectStore())

	res, err := uc.Execute(context.Background(), CreateProjectInput{
		OwnerID: owner(),
		Title:   "Alpha",
		Content: map[string]any{"goal": "G1", "bogus": "dropped"},
		ColorConfig: map[string]any{
			"goal": map[string]any{"shapeColor": "#000", "textColor": "#fff"},
		},
	})
	require.NoError(t, err)

	p := res.Project
	assert.Len(t, p.Content, 8)
	assert.Equal(t, "G1", p.Content[domain.SectionGoal])
	assert.Nil(t, p.Content[domain.SectionAim])
	assert.Len(t, p.ColorConfig, 8)
	assert.Equal(t, domain.ColorPair{ShapeColor: "#000", TextColor: "#fff"}, p.ColorConfig[domain.SectionGoal])
	assert.Equal(t, domain.ColorPair{}, p.ColorConfig[domain.SectionOutcomes])
}

func seedProject(t *testing.T, store *fakeProjectStore, u domain.UserID, title string) *domain.Project {
	t.Helper()
	res, err := NewCreateProject(store).Execute(context.Background(), CreateProjectInput{OwnerID: u, Title: title})
	require.NoError(t, err)
	return res.Project
}

func TestUpdateProjectNotFound(t *testing.T) {
	uc := NewUpdateProject(newFakeProjectStore())
	_, err := uc.Execute(context.Background(), UpdateProjectInput{OwnerID: owner(), ProjectID: "1", Title: "X"})
	assert.ErrorIs(t, err, domerrors.ErrProjectNotFound)
}

func TestUpdateProjectSameTitleSkipsUniquenessCheck(t *testing.T) {
	store := newFakeProjectStore()
	u := owner()
	seedProject(t, store, u, "Alpha")

	_, err := NewUpdateProject(store).Execute(context.Background(), UpdateProjectInput{
		OwnerID:   u,
		ProjectID: "1",
		Title:     "Alpha",
	})
	require.NoError(t, err)
	assert.Zero(t, store.titleExistsCalls, "unchanged title must not trigger a uniqueness check")
}

func TestUpdateProjectRenameRequiresConfirmation(t *testing.T) {
	store := newFakeProjectStore()
	u := owner()
	seedProject(t, store, u, "Alpha")

	_, err := NewUpdateProject(store).Execute(context.Background(), UpdateProjectInput{
		OwnerID:   u,
		ProjectID: "1",
		Title:     "Bravo",
	})
	assert.ErrorIs(t, err, domerrors.ErrRenameConfirmationRequired)
	assert.Zero(t, store.replaceCalls, "no write on unconfirmed rename")
	assert.Zero(t, store.titleExistsCalls, "confirmation gate comes before the uniqueness check")
}

func TestUpdateProjectConfirmedRename(t *testing.T) {
	store := newFakeProjectStore()
	u := owner()
	seedProject(t, store, u, "Alpha")
	seedProject(t, store, u, "Bravo")

	uc := NewUpdateProject(store)

	_, err := uc.Execute(context.Background(), UpdateProjectInput{
		OwnerID:       u,
		ProjectID:     "1",
		Title:         "bravo",
		ConfirmRename: true,
	})
	assert.ErrorIs(t, err, domerrors.ErrTitleExists, "collision check is case-insensitive")

	res, err := uc.Execute(context.Background(), UpdateProjectInput{
		OwnerID:       u,
		ProjectID:     "1",
		Title:         "Charlie",
		ConfirmRename: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Charlie", res.Project.Title)
}

func TestUpdateProjectCaseOnlyRenameQuirk(t *testing.T) {
	store := newFakeProjectStore()
	u := owner()
	seedProject(t, store, u, "Alpha")

	uc := NewUpdateProject(store)

	// Exact compare says rename; confirmation required.
	_, err := uc.Execute(context.Background(), UpdateProjectInput{
		OwnerID:   u,
		ProjectID: "1",
		Title:     "ALPHA",
	})
	assert.ErrorIs(t, err, domerrors.ErrRenameConfirmationRequired)

	// Once confirmed, the collision check excludes the project itself, so a
	// case-only rename goes through unless another project holds the title.
	res, err := uc.Execute(context.Background(), UpdateProjectInput{
		OwnerID:       u,
		ProjectID:     "1",
		Title:         "ALPHA",
		ConfirmRename: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ALPHA", res.Project.Title)
}

func TestUpdateProjectContentAndColorMerge(t *testing.T) {
	store := newFakeProjectStore()
	u := owner()
	res, err := NewCreateProject(store).Execute(context.Background(), CreateProjectInput{
		OwnerID: u,
		Title:   "Alpha",
		Content: map[string]any{"goal": "G1", "aim": "A1"},
		ColorConfig: map[string]any{
			"goal": map[string]any{"shapeColor": "#000", "textColor": ""},
		},
	})
	require.NoError(t, err)

	updated, err := NewUpdateProject(store).Execute(context.Background(), UpdateProjectInput{
		OwnerID:   u,
		ProjectID: res.Project.ProjectID,
		Title:     "Alpha",
		Content:   map[string]any{"goal": nil},
	})
	require.NoError(t, err)

	p := updated.Project
	assert.Nil(t, p.Content[domain.SectionGoal], "explicit null overwrites")
	assert.Equal(t, "A1", p.Content[domain.SectionAim], "absent key preserves")
	assert.Equal(t, "#000", p.ColorConfig[domain.SectionGoal].ShapeColor, "colors untouched without a color patch")
	assert.Equal(t, "", p.ColorConfig[domain.SectionGoal].TextColor)
	assert.Equal(t, res.Project.CreatedAt, p.CreatedAt, "createdAt immutable")
}

func TestUpdateProjectPartialColorPatch(t *testing.T) {
	store := newFakeProjectStore()
	u := owner()
	res, err := NewCreateProject(store).Execute(context.Background(), CreateProjectInput{
		OwnerID: u,
		Title:   "Alpha",
		ColorConfig: map[string]any{
			"goal": map[string]any{"shapeColor": "#000", "textColor": "#eee"},
		},
	})
	require.NoError(t, err)

	updated, err := NewUpdateProject(store).Execute(context.Background(), UpdateProjectInput{
		OwnerID:     u,
		ProjectID:   res.Project.ProjectID,
		Title:       "Alpha",
		ColorConfig: map[string]any{"goal": map[string]any{"shapeColor": "#f00"}},
	})
	require.NoError(t, err)

	pair := updated.Project.ColorConfig[domain.SectionGoal]
	assert.Equal(t, "#f00", pair.ShapeColor)
	assert.Equal(t, "#eee", pair.TextColor, "shape-only patch keeps textColor")
}

func TestUpdateProjectStatusDefaultsToExisting(t *testing.T) {
	store := newFakeProjectStore()
	u := owner()
	seedProject(t, store, u, "Alpha")

	uc := NewUpdateProject(store)

	res, err := uc.Execute(context.Background(), UpdateProjectInput{
		OwnerID:   u,
		ProjectID: "1",
		Title:     "Alpha",
		Status:    domain.StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, res.Project.Status)

	res, err = uc.Execute(context.Background(), UpdateProjectInput{
		OwnerID:   u,
		ProjectID: "1",
		Title:     "Alpha",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, res.Project.Status, "absent status keeps the stored one")

	_, err = uc.Execute(context.Background(), UpdateProjectInput{
		OwnerID:   u,
		ProjectID: "1",
		Title:     "Alpha",
		Status:    "archived",
	})
	assert.True(t, domerrors.IsValidation(err))
}

func TestDeleteProject(t *testing.T) {
	store := newFakeProjectStore()
	u := owner()
	seedProject(t, store, u, "Alpha")

	uc := NewDeleteProject(store)
	require.NoError(t, uc.Execute(context.Background(), u, "1"))
	assert.ErrorIs(t, uc.Execute(context.Background(), u, "1"), domerrors.ErrProjectNotFound)
}

func TestGetAndListProjects(t *testing.T) {
	store := newFakeProjectStore()
	u := owner()
	seedProject(t, store, u, "Alpha")

	got, err := NewGetProject(store).Execute(context.Background(), u, "1")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Title)

	_, err = NewGetProject(store).Execute(context.Background(), u, "99")
	assert.ErrorIs(t, err, domerrors.ErrProjectNotFound)

	list, err := NewListProjects(store).Execute(context.Background(), u)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
