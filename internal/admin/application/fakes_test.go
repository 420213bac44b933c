package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

type idSeq struct {
	mu sync.Mutex
	n  int
}

func (s *idSeq) next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s%d", prefix, s.n)
}

type memClients struct {
	seq   idSeq
	items map[string]admindomain.Client
	order []string
}

func newMemClients() *memClients {
	return &memClients{items: map[string]admindomain.Client{}}
}

func (m *memClients) Create(_ context.Context, c *admindomain.Client) error {
	c.ID = m.seq.next("client")
	m.items[c.ID] = *c
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memClients) FindByID(_ context.Context, id string) (*admindomain.Client, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, fault.NotFoundf("client %s not found", id)
	}
	return &c, nil
}

func (m *memClients) FindByIDs(_ context.Context, ids []string) ([]admindomain.Client, error) {
	out := []admindomain.Client{}
	for _, id := range ids {
		if c, ok := m.items[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memClients) FindAll(context.Context) ([]admindomain.Client, error) {
	out := []admindomain.Client{}
	for _, id := range m.order {
		if c, ok := m.items[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memClients) Delete(_ context.Context, id string) (*admindomain.Client, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, fault.NotFoundf("client %s not found", id)
	}
	delete(m.items, id)
	return &c, nil
}

func (m *memClients) Count(context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

type memCampaigns struct {
	seq   idSeq
	items map[string]admindomain.Campaign
	order []string
}

func newMemCampaigns() *memCampaigns {
	return &memCampaigns{items: map[string]admindomain.Campaign{}}
}

func (m *memCampaigns) Create(_ context.Context, c *admindomain.Campaign) error {
	c.ID = m.seq.next("campaign")
	m.items[c.ID] = *c
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memCampaigns) FindByID(_ context.Context, id string) (*admindomain.Campaign, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, fault.NotFoundf("campaign %s not found", id)
	}
	return &c, nil
}

func (m *memCampaigns) FindByIDs(_ context.Context, ids []string) ([]admindomain.Campaign, error) {
	out := []admindomain.Campaign{}
	for _, id := range ids {
		if c, ok := m.items[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCampaigns) FindRecent(_ context.Context, limit int) ([]admindomain.Campaign, error) {
	out := []admindomain.Campaign{}
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		if c, ok := m.items[m.order[i]]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCampaigns) FindByClient(_ context.Context, clientID string) ([]admindomain.Campaign, error) {
	out := []admindomain.Campaign{}
	for _, id := range m.order {
		if c, ok := m.items[id]; ok && c.ClientID == clientID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCampaigns) Delete(_ context.Context, id string) (*admindomain.Campaign, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, fault.NotFoundf("campaign %s not found", id)
	}
	delete(m.items, id)
	return &c, nil
}

func (m *memCampaigns) Count(context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

type memForms struct {
	seq          idSeq
	items        map[string]admindomain.FormDefinition
	addNestedErr error
}

func newMemForms() *memForms {
	return &memForms{items: map[string]admindomain.FormDefinition{}}
}

func (m *memForms) Create(_ context.Context, f *admindomain.FormDefinition) error {
	f.ID = m.seq.next("form")
	f.CollectionName = admindomain.CollectionNameFor(f.ID)
	m.items[f.ID] = *f
	return nil
}

func (m *memForms) FindByID(_ context.Context, id string) (*admindomain.FormDefinition, error) {
	f, ok := m.items[id]
	if !ok {
		return nil, fault.NotFoundf("form %s not found", id)
	}
	f.NestedForms = append([]string(nil), f.NestedForms...)
	return &f, nil
}

func (m *memForms) FindByIDs(_ context.Context, ids []string) ([]admindomain.FormDefinition, error) {
	out := []admindomain.FormDefinition{}
	for _, id := range ids {
		if f, ok := m.items[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memForms) FindByCampaign(_ context.Context, campaignID string, topLevelOnly bool) ([]admindomain.FormDefinition, error) {
	out := []admindomain.FormDefinition{}
	for _, f := range m.items {
		if f.CampaignID != campaignID || (topLevelOnly && f.IsNested) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memForms) FindByCollectionName(_ context.Context, name string) (*admindomain.FormDefinition, error) {
	for _, f := range m.items {
		if f.CollectionName == name {
			return &f, nil
		}
	}
	return nil, fault.NotFoundf("collection %s not found", name)
}

func (m *memForms) AddNested(_ context.Context, parentID, childID string) error {
	if m.addNestedErr != nil {
		return m.addNestedErr
	}
	f, ok := m.items[parentID]
	if !ok {
		return fault.NotFoundf("form %s not found", parentID)
	}
	f.LinkNestedForm(childID)
	m.items[parentID] = f
	return nil
}

func (m *memForms) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memForms) Count(context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

type memProvisioner struct {
	createErr   error
	collections map[string]bool
	dropped     []string
}

func newMemProvisioner() *memProvisioner {
	return &memProvisioner{collections: map[string]bool{}}
}

func (p *memProvisioner) CreateCollection(_ context.Context, name string) error {
	if p.createErr != nil {
		return p.createErr
	}
	p.collections[name] = true
	return nil
}

func (p *memProvisioner) DropCollection(_ context.Context, name string) error {
	delete(p.collections, name)
	p.dropped = append(p.dropped, name)
	return nil
}

type memRecords struct {
	seq  idSeq
	data map[string][]admindomain.DynamicRecord
}

func newMemRecords() *memRecords {
	return &memRecords{data: map[string][]admindomain.DynamicRecord{}}
}

func (m *memRecords) Insert(_ context.Context, collection string, r *admindomain.DynamicRecord) error {
	r.ID = m.seq.next("rec")
	m.data[collection] = append(m.data[collection], *r)
	return nil
}

func (m *memRecords) FindAll(_ context.Context, collection string) ([]admindomain.DynamicRecord, error) {
	return append([]admindomain.DynamicRecord{}, m.data[collection]...), nil
}

func (m *memRecords) SetAccepted(_ context.Context, collection, itemID string, accepted bool) (*admindomain.DynamicRecord, error) {
	for i, r := range m.data[collection] {
		if r.ID == itemID {
			v := accepted
			m.data[collection][i].AcceptedData = &v
			out := m.data[collection][i]
			return &out, nil
		}
	}
	return nil, fault.NotFoundf("record %s not found", itemID)
}

type memRights struct {
	seq   idSeq
	items []admindomain.RightsRecord
}

func (m *memRights) Create(_ context.Context, r *admindomain.RightsRecord) error {
	for _, existing := range m.items {
		if existing.Key == r.Key {
			return fault.Validation("rights already exist for this key")
		}
	}
	r.ID = m.seq.next("rights")
	m.items = append(m.items, *r)
	return nil
}

func (m *memRights) Update(_ context.Context, key admindomain.RightsKey, patch admindomain.RightsPatch) (*admindomain.RightsRecord, error) {
	for i, r := range m.items {
		if r.Key == key {
			m.items[i].Flags = patch.Apply(r.Flags)
			out := m.items[i]
			return &out, nil
		}
	}
	return nil, fault.NotFound("rights not found")
}

func (m *memRights) FindByFormAndEmployee(_ context.Context, formID, employeeID string) ([]admindomain.RightsRecord, error) {
	out := []admindomain.RightsRecord{}
	for _, r := range m.items {
		if r.Key.FormID == formID && r.Key.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memUsers struct {
	seq   idSeq
	items map[string]admindomain.User
}

func newMemUsers() *memUsers {
	return &memUsers{items: map[string]admindomain.User{}}
}

func (m *memUsers) add(name string, role admindomain.Role) admindomain.User {
	u := admindomain.User{Name: name, Email: admindomain.Email(name + "@example.com"), Role: role}
	_ = m.Create(context.Background(), &u)
	return u
}

func (m *memUsers) Create(_ context.Context, u *admindomain.User) error {
	u.ID = m.seq.next("user")
	m.items[u.ID] = *u
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (*admindomain.User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, fault.NotFoundf("user %s not found", id)
	}
	return &u, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*admindomain.User, error) {
	for _, u := range m.items {
		if u.Email.String() == email {
			return &u, nil
		}
	}
	return nil, fault.NotFound("user not found")
}

func (m *memUsers) FindByRole(_ context.Context, role admindomain.Role) ([]admindomain.User, error) {
	out := []admindomain.User{}
	for _, u := range m.items {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) CountByRole(ctx context.Context, role admindomain.Role) (int64, error) {
	users, _ := m.FindByRole(ctx, role)
	return int64(len(users)), nil
}

type edge struct {
	kind      admindomain.AssignmentKind
	owner     string
	relatedID string
}

type memAssignments struct {
	edges []edge
}

func (m *memAssignments) Add(_ context.Context, kind admindomain.AssignmentKind, owner, related string) (bool, error) {
	e := edge{kind, owner, related}
	for _, existing := range m.edges {
		if existing == e {
			return false, nil
		}
	}
	m.edges = append(m.edges, e)
	return true, nil
}

func (m *memAssignments) Remove(_ context.Context, kind admindomain.AssignmentKind, owner, related string) (bool, error) {
	e := edge{kind, owner, related}
	for i, existing := range m.edges {
		if existing == e {
			m.edges = append(m.edges[:i], m.edges[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memAssignments) RelatedIDs(_ context.Context, kind admindomain.AssignmentKind, owner string) ([]string, error) {
	out := []string{}
	for _, e := range m.edges {
		if e.kind == kind && e.owner == owner {
			out = append(out, e.relatedID)
		}
	}
	return out, nil
}

func (m *memAssignments) RelatedIDsByOwner(ctx context.Context, kind admindomain.AssignmentKind, owners []string) (map[string][]string, error) {
	out := map[string][]string{}
	for _, owner := range owners {
		ids, _ := m.RelatedIDs(ctx, kind, owner)
		out[owner] = ids
	}
	return out, nil
}

type stubUploader struct {
	url    string
	err    error
	folder string
}

func (s *stubUploader) Upload(_ context.Context, folder, _, _ string, body io.Reader) (string, error) {
	s.folder = folder
	if s.err != nil {
		return "", s.err
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	return s.url, nil
}

type stubIssuer struct{}

func (stubIssuer) Issue(u admindomain.User) (string, error) {
	if u.ID == "" {
		return "", errors.New("missing subject")
	}
	return "token-" + u.ID, nil
}
