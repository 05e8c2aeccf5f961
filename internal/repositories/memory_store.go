package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"iblaze_backend/internal/models"
)

// MemoryStore keeps every table in process. It backs the "memory" database
// driver and the test suites; relations are resolved on read the same way
// the GORM preloads do.
type MemoryStore struct {
	mu sync.RWMutex

	users     map[string]models.User
	userOrder []string
	emails    map[string]string // email -> user ID

	ideas     map[string]models.Idea
	ideaOrder []string
	requests  map[string]models.AccessRequest
	reqOrder  []string
	approved  map[string][]models.ApprovedInvestor // idea ID -> investors
	views     map[string][]models.IdeaView         // idea ID -> views

	jobs     map[string]models.Job
	jobOrder []string
	apps     map[string]models.Application
	appOrder []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]models.User),
		emails:   make(map[string]string),
		ideas:    make(map[string]models.Idea),
		requests: make(map[string]models.AccessRequest),
		approved: make(map[string][]models.ApprovedInvestor),
		views:    make(map[string][]models.IdeaView),
		jobs:     make(map[string]models.Job),
		apps:     make(map[string]models.Application),
	}
}

// NewMemoryRepositories wires a fresh MemoryStore into a Repositories set.
func NewMemoryRepositories() *Repositories {
	return NewMemoryStore().Repositories()
}

func (m *MemoryStore) Repositories() *Repositories {
	return &Repositories{
		Users:        &memoryUsers{m},
		Ideas:        &memoryIdeas{m},
		Jobs:         &memoryJobs{m},
		Applications: &memoryApplications{m},
		Analytics:    &memoryAnalytics{m},
		Ping:         func(context.Context) error { return nil },
	}
}

func cloneUser(u models.User) models.User {
	if u.RefreshToken != nil {
		token := *u.RefreshToken
		u.RefreshToken = &token
	}
	return u
}

// userRef returns a detached copy of the user, or nil when it does not exist.
// Callers must hold m.mu.
func (m *MemoryStore) userRef(id string) *models.User {
	u, ok := m.users[id]
	if !ok {
		return nil
	}
	c := cloneUser(u)
	return &c
}

func removeID(order []string, id string) []string {
	filtered := order[:0]
	for _, item := range order {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// ---- users ----

type memoryUsers struct{ m *MemoryStore }

func (r *memoryUsers) Create(_ context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	user.Email = normalizeEmail(user.Email)
	if _, exists := r.m.emails[user.Email]; exists {
		return ErrUserAlreadyExists
	}
	user.EnsureID()
	r.m.users[user.ID] = cloneUser(*user)
	r.m.emails[user.Email] = user.ID
	r.m.userOrder = append(r.m.userOrder, user.ID)
	return nil
}

func (r *memoryUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if u := r.m.userRef(id); u != nil {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	id, ok := r.m.emails[normalizeEmail(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return r.m.userRef(id), nil
}

func (r *memoryUsers) SetRefreshToken(_ context.Context, userID string, token *string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.RefreshToken = nil
	if token != nil {
		t := *token
		u.RefreshToken = &t
	}
	u.UpdatedAt = time.Now().UTC()
	r.m.users[userID] = u
	return nil
}

func (r *memoryUsers) UpdateStanding(_ context.Context, userID string, patch UserStandingPatch) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if patch.IsApproved != nil {
		u.IsApproved = *patch.IsApproved
	}
	if patch.IsVerified != nil {
		u.IsVerified = *patch.IsVerified
	}
	if patch.Status != nil {
		u.Status = *patch.Status
		if u.Status == models.UserStatusSuspended {
			u.RefreshToken = nil
		}
	}
	u.UpdatedAt = time.Now().UTC()
	r.m.users[userID] = u
	return r.m.userRef(userID), nil
}

func (r *memoryUsers) FindWithFilter(_ context.Context, filter UserFilter) ([]models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	res := make([]models.User, 0, len(r.m.userOrder))
	for i := len(r.m.userOrder) - 1; i >= 0; i-- {
		u := r.m.users[r.m.userOrder[i]]
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		res = append(res, cloneUser(u))
	}
	return res, nil
}

// ---- ideas ----

type memoryIdeas struct{ m *MemoryStore }

func (r *memoryIdeas) Create(_ context.Context, idea *models.Idea) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	idea.EnsureID()
	if idea.Status == "" {
		idea.Status = models.ModerationPending
	}
	if idea.Stage == "" {
		idea.Stage = models.IdeaStageConcept
	}
	stored := *idea
	stored.Creator = nil
	stored.AccessRequests = nil
	stored.ApprovedInvestors = nil
	stored.Views = nil
	r.m.ideas[idea.ID] = stored
	r.m.ideaOrder = append(r.m.ideaOrder, idea.ID)
	return nil
}

func (r *memoryIdeas) views(ideaID string) []models.IdeaView {
	return append([]models.IdeaView(nil), r.m.views[ideaID]...)
}

func (r *memoryIdeas) FindByID(_ context.Context, id string) (*models.Idea, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	idea, ok := r.m.ideas[id]
	if !ok {
		return nil, ErrIdeaNotFound
	}
	idea.Creator = r.m.userRef(idea.CreatorID)
	for _, reqID := range r.m.reqOrder {
		req := r.m.requests[reqID]
		if req.IdeaID != id {
			continue
		}
		req.Investor = r.m.userRef(req.InvestorID)
		idea.AccessRequests = append(idea.AccessRequests, req)
	}
	for _, a := range r.m.approved[id] {
		a.Investor = r.m.userRef(a.InvestorID)
		idea.ApprovedInvestors = append(idea.ApprovedInvestors, a)
	}
	idea.Views = r.views(id)
	return &idea, nil
}

func (r *memoryIdeas) FindByStatus(_ context.Context, status models.ModerationStatus) ([]models.Idea, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var res []models.Idea
	for i := len(r.m.ideaOrder) - 1; i >= 0; i-- {
		idea := r.m.ideas[r.m.ideaOrder[i]]
		if idea.Status != status {
			continue
		}
		idea.Creator = r.m.userRef(idea.CreatorID)
		idea.Views = r.views(idea.ID)
		res = append(res, idea)
	}
	return res, nil
}

func (r *memoryIdeas) Update(_ context.Context, id string, patch IdeaPatch) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	idea, ok := r.m.ideas[id]
	if !ok {
		return ErrIdeaNotFound
	}
	if patch.Title != nil {
		idea.Title = *patch.Title
	}
	if patch.PublicSummary != nil {
		idea.PublicSummary = *patch.PublicSummary
	}
	if patch.FullDescription != nil {
		idea.FullDescription = *patch.FullDescription
	}
	if patch.Category != nil {
		idea.Category = *patch.Category
	}
	if patch.Industry != nil {
		idea.Industry = *patch.Industry
	}
	if patch.Stage != nil {
		idea.Stage = *patch.Stage
	}
	if patch.Status != nil {
		idea.Status = *patch.Status
	}
	idea.UpdatedAt = time.Now().UTC()
	r.m.ideas[id] = idea
	return nil
}

func (r *memoryIdeas) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.ideas[id]; !ok {
		return ErrIdeaNotFound
	}
	for reqID, req := range r.m.requests {
		if req.IdeaID == id {
			delete(r.m.requests, reqID)
			r.m.reqOrder = removeID(r.m.reqOrder, reqID)
		}
	}
	delete(r.m.approved, id)
	delete(r.m.views, id)
	delete(r.m.ideas, id)
	r.m.ideaOrder = removeID(r.m.ideaOrder, id)
	return nil
}

func (r *memoryIdeas) AddView(_ context.Context, ideaID, userID string, at time.Time) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, v := range r.m.views[ideaID] {
		if v.UserID == userID {
			return false, nil
		}
	}
	r.m.views[ideaID] = append(r.m.views[ideaID], models.IdeaView{IdeaID: ideaID, UserID: userID, ViewedAt: at})
	return true, nil
}

func (r *memoryIdeas) AddAccessRequest(_ context.Context, req *models.AccessRequest) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.requests {
		if existing.IdeaID == req.IdeaID && existing.InvestorID == req.InvestorID {
			return ErrAccessRequestExists
		}
	}
	req.EnsureID()
	if req.Status == "" {
		req.Status = models.AccessRequestPending
	}
	if req.RequestedAt.IsZero() {
		req.RequestedAt = req.CreatedAt
	}
	stored := *req
	stored.Investor = nil
	r.m.requests[req.ID] = stored
	r.m.reqOrder = append(r.m.reqOrder, req.ID)
	return nil
}

func (r *memoryIdeas) DecideAccessRequest(_ context.Context, ideaID, requestID string, status models.AccessRequestStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	req, ok := r.m.requests[requestID]
	if !ok || req.IdeaID != ideaID {
		return ErrAccessRequestNotFound
	}
	if req.Status != models.AccessRequestPending {
		return ErrAccessRequestDecided
	}
	now := time.Now().UTC()
	req.Status = status
	req.UpdatedAt = now
	r.m.requests[requestID] = req

	if status != models.AccessRequestApproved {
		return nil
	}
	for _, a := range r.m.approved[ideaID] {
		if a.InvestorID == req.InvestorID {
			return nil
		}
	}
	r.m.approved[ideaID] = append(r.m.approved[ideaID], models.ApprovedInvestor{
		IdeaID:     ideaID,
		InvestorID: req.InvestorID,
		CreatedAt:  now,
	})
	return nil
}

// ---- jobs ----

type memoryJobs struct{ m *MemoryStore }

func cloneJob(j models.Job) models.Job {
	if j.SkillsRequired != nil {
		j.SkillsRequired = append([]string(nil), j.SkillsRequired...)
	}
	return j
}

func (r *memoryJobs) Create(_ context.Context, job *models.Job) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	job.EnsureID()
	if job.Status == "" {
		job.Status = models.ModerationPending
	}
	stored := cloneJob(*job)
	stored.Employer = nil
	r.m.jobs[job.ID] = stored
	r.m.jobOrder = append(r.m.jobOrder, job.ID)
	return nil
}

func (r *memoryJobs) FindByID(_ context.Context, id string) (*models.Job, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	job, ok := r.m.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	job = cloneJob(job)
	job.Employer = r.m.userRef(job.EmployerID)
	return &job, nil
}

func (r *memoryJobs) FindByStatus(_ context.Context, status models.ModerationStatus) ([]models.Job, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var res []models.Job
	for i := len(r.m.jobOrder) - 1; i >= 0; i-- {
		job := r.m.jobs[r.m.jobOrder[i]]
		if job.Status != status {
			continue
		}
		job = cloneJob(job)
		job.Employer = r.m.userRef(job.EmployerID)
		res = append(res, job)
	}
	return res, nil
}

func (r *memoryJobs) Update(_ context.Context, id string, patch JobPatch) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	job, ok := r.m.jobs[id]
	if !ok {
		return ErrJobNotFound
	}
	if patch.Title != nil {
		job.Title = *patch.Title
	}
	if patch.Description != nil {
		job.Description = *patch.Description
	}
	if patch.JobType != nil {
		job.JobType = *patch.JobType
	}
	if patch.Location != nil {
		job.Location = *patch.Location
	}
	if patch.WorkMode != nil {
		job.WorkMode = *patch.WorkMode
	}
	if patch.Duration != nil {
		job.Duration = *patch.Duration
	}
	if patch.Stipend != nil {
		job.Stipend = *patch.Stipend
	}
	if patch.SkillsRequired != nil {
		job.SkillsRequired = append([]string(nil), (*patch.SkillsRequired)...)
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	job.UpdatedAt = time.Now().UTC()
	r.m.jobs[id] = job
	return nil
}

func (r *memoryJobs) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.jobs[id]; !ok {
		return ErrJobNotFound
	}
	for appID, app := range r.m.apps {
		if app.JobID == id {
			delete(r.m.apps, appID)
			r.m.appOrder = removeID(r.m.appOrder, appID)
		}
	}
	delete(r.m.jobs, id)
	r.m.jobOrder = removeID(r.m.jobOrder, id)
	return nil
}

// ---- applications ----

type memoryApplications struct{ m *MemoryStore }

func cloneApplication(a models.Application) models.Application {
	if a.ReviewedByID != nil {
		id := *a.ReviewedByID
		a.ReviewedByID = &id
	}
	a.Job, a.Applicant, a.ReviewedBy = nil, nil, nil
	return a
}

// Callers must hold m.mu.
func (r *memoryApplications) withRelations(a models.Application) models.Application {
	a = cloneApplication(a)
	a.Applicant = r.m.userRef(a.ApplicantID)
	if a.ReviewedByID != nil {
		a.ReviewedBy = r.m.userRef(*a.ReviewedByID)
	}
	return a
}

func (r *memoryApplications) Create(_ context.Context, app *models.Application) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.apps {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return ErrApplicationExists
		}
	}
	app.EnsureID()
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}
	r.m.apps[app.ID] = cloneApplication(*app)
	r.m.appOrder = append(r.m.appOrder, app.ID)
	return nil
}

func (r *memoryApplications) FindByID(_ context.Context, id string) (*models.Application, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	app, ok := r.m.apps[id]
	if !ok {
		return nil, ErrApplicationNotFound
	}
	app = r.withRelations(app)
	if job, ok := r.m.jobs[app.JobID]; ok {
		job = cloneJob(job)
		app.Job = &job
	}
	return &app, nil
}

func (r *memoryApplications) Exists(_ context.Context, jobID, applicantID string) (bool, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, app := range r.m.apps {
		if app.JobID == jobID && app.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryApplications) FindByJob(_ context.Context, jobID string) ([]models.Application, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var res []models.Application
	for i := len(r.m.appOrder) - 1; i >= 0; i-- {
		app := r.m.apps[r.m.appOrder[i]]
		if app.JobID == jobID {
			res = append(res, r.withRelations(app))
		}
	}
	return res, nil
}

func (r *memoryApplications) UpdateStatus(_ context.Context, id string, status models.ApplicationStatus, reviewerID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	app, ok := r.m.apps[id]
	if !ok {
		return ErrApplicationNotFound
	}
	app.Status = status
	app.ReviewedByID = &reviewerID
	app.UpdatedAt = time.Now().UTC()
	r.m.apps[id] = app
	return nil
}

// ---- analytics ----

type memoryAnalytics struct{ m *MemoryStore }

func (r *memoryAnalytics) Totals(_ context.Context) (*Totals, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return &Totals{
		Users:        int64(len(r.m.users)),
		Ideas:        int64(len(r.m.ideas)),
		Jobs:         int64(len(r.m.jobs)),
		Applications: int64(len(r.m.apps)),
	}, nil
}

func sortedCounts(counts map[string]int64) []GroupCount {
	res := make([]GroupCount, 0, len(counts))
	for k, v := range counts {
		res = append(res, GroupCount{Key: k, Count: v})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Key < res[j].Key })
	return res
}

func (r *memoryAnalytics) UsersByRole(_ context.Context) ([]GroupCount, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	counts := map[string]int64{}
	for _, u := range r.m.users {
		counts[string(u.Role)]++
	}
	return sortedCounts(counts), nil
}

func (r *memoryAnalytics) IdeasByStatus(_ context.Context) ([]GroupCount, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	counts := map[string]int64{}
	for _, idea := range r.m.ideas {
		counts[string(idea.Status)]++
	}
	return sortedCounts(counts), nil
}

func (r *memoryAnalytics) JobsByStatus(_ context.Context) ([]GroupCount, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	counts := map[string]int64{}
	for _, job := range r.m.jobs {
		counts[string(job.Status)]++
	}
	return sortedCounts(counts), nil
}
