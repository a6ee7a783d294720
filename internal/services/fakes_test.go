package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hireboard/api/internal/models"
	pgrepo "github.com/hireboard/api/internal/repositories/postgres"
	"github.com/hireboard/api/internal/utils"
)

type fakeAppRepo struct {
	mu   sync.Mutex
	apps map[string]*models.Application
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: make(map[string]*models.Application)}
}

func (r *fakeAppRepo) Insert(ctx context.Context, a *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.apps[a.ID] = &cp
	return nil
}

func (r *fakeAppRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAppRepo) Update(ctx context.Context, a *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[a.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *a
	cp.AppliedAt = r.apps[a.ID].AppliedAt
	r.apps[a.ID] = &cp
	return nil
}

func (r *fakeAppRepo) List(ctx context.Context, f pgrepo.ApplicationFilter) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.apps {
		if f.JobID != "" && a.JobID != f.JobID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

func (r *fakeAppRepo) SimilarByEmbedding(ctx context.Context, id string, limit int) ([]pgrepo.SimilarApplication, error) {
	return nil, nil
}

type fakeTagRepo struct {
	mu       sync.Mutex
	tags     map[string]*models.CandidateTag
	byName   map[string]string
	attached map[[2]string]*models.ApplicationTag // (appID, tagID)
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{
		tags:     make(map[string]*models.CandidateTag),
		byName:   make(map[string]string),
		attached: make(map[[2]string]*models.ApplicationTag),
	}
}

func (r *fakeTagRepo) Insert(ctx context.Context, t *models.CandidateTag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byName[t.Name]; dup {
		return utils.ErrDuplicate
	}
	cp := *t
	r.tags[t.ID] = &cp
	r.byName[t.Name] = t.ID
	return nil
}

func (r *fakeTagRepo) GetByID(ctx context.Context, id string) (*models.CandidateTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tags[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTagRepo) Update(ctx context.Context, t *models.CandidateTag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.tags[t.ID]
	if !ok {
		return utils.ErrNotFound
	}
	if id, dup := r.byName[t.Name]; dup && id != t.ID {
		return utils.ErrDuplicate
	}
	delete(r.byName, old.Name)
	cp := *t
	cp.CreatedAt = old.CreatedAt
	r.tags[t.ID] = &cp
	r.byName[t.Name] = t.ID
	return nil
}

func (r *fakeTagRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tags[id]
	if !ok {
		return utils.ErrNotFound
	}
	delete(r.byName, t.Name)
	delete(r.tags, id)
	for k := range r.attached {
		if k[1] == id {
			delete(r.attached, k)
		}
	}
	return nil
}

func (r *fakeTagRepo) List(ctx context.Context) ([]models.CandidateTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CandidateTag
	for _, t := range r.tags {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTagRepo) Attach(ctx context.Context, at *models.ApplicationTag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := [2]string{at.ApplicationID, at.TagID}
	if _, dup := r.attached[k]; dup {
		return utils.ErrDuplicate
	}
	cp := *at
	r.attached[k] = &cp
	return nil
}

func (r *fakeTagRepo) Detach(ctx context.Context, applicationID, tagID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attached, [2]string{applicationID, tagID})
	return nil
}

func (r *fakeTagRepo) ListForApplication(ctx context.Context, applicationID string) ([]models.CandidateTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CandidateTag
	for k := range r.attached {
		if k[0] != applicationID {
			continue
		}
		if t, ok := r.tags[k[1]]; ok {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *fakeJobRepo) Insert(ctx context.Context, j *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[j.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) List(ctx context.Context, onlyOpen bool) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, j := range r.jobs {
		if onlyOpen && j.Status != models.JobOpen {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

type fakeHistoryRepo struct {
	mu     sync.Mutex
	events []models.StatusEvent
}

func (r *fakeHistoryRepo) Insert(ctx context.Context, e *models.StatusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *e)
	return nil
}

func (r *fakeHistoryRepo) ListByApplication(ctx context.Context, applicationID string) ([]models.StatusEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.StatusEvent
	for _, e := range r.events {
		if e.ApplicationID == applicationID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out, nil
}

type notification struct {
	appID string
	from  models.ApplicationStatus
	to    models.ApplicationStatus
}

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []notification
	posted []string // alert emails that received a job posting
}

func (n *fakeNotifier) StatusChanged(ctx context.Context, app *models.Application, from, to models.ApplicationStatus) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{appID: app.ID, from: from, to: to})
	return nil
}

func (n *fakeNotifier) JobPosted(ctx context.Context, alert *models.JobAlert, job *models.Job) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.posted = append(n.posted, alert.Email)
	return nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	byEmail map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (r *fakeUserRepo) Insert(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byEmail[u.Email]; dup {
		return utils.ErrDuplicate
	}
	cp := *u
	r.users[u.ID] = &cp
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *r.users[id]
	return &cp, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeAlertRepo struct {
	mu     sync.Mutex
	alerts map[string]*models.JobAlert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: make(map[string]*models.JobAlert)}
}

func (r *fakeAlertRepo) Insert(ctx context.Context, a *models.JobAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.alerts[a.ID] = &cp
	return nil
}

func (r *fakeAlertRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.alerts, id)
	return nil
}

func (r *fakeAlertRepo) List(ctx context.Context) ([]models.JobAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JobAlert
	for _, a := range r.alerts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *fakeAlertRepo) GetByEmailKeyword(ctx context.Context, email, keyword string) (*models.JobAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.alerts {
		if a.Email == email && a.Keyword == keyword {
			cp := *a
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

type fakeCache struct {
	mu      sync.Mutex
	store   map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	return false, nil
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	return nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, keys...)
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	channels []string
}

func (p *fakePublisher) Publish(ctx context.Context, channel string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels = append(p.channels, channel)
	return nil
}

type fakeQueue struct {
	mu  sync.Mutex
	ids []string
}

func (q *fakeQueue) Enqueue(ctx context.Context, applicationID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, applicationID)
	return nil
}
