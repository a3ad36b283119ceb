package services

import (
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"stat-reports-api/models"
	"stat-reports-api/repository"
)

// fakeStore is an in-memory repository.Store for exercising the workflow
// services without a database. WithinTransaction runs the callback against
// the same state; rollback behavior is covered by the precondition checks
// that run before any mutation.
type fakeStore struct {
	deadlines     map[uint]*models.SubmissionDeadline
	reports       map[uint]*models.Report
	templates     map[uint]*models.ReportTemplate
	branches      map[uint]*models.Branch
	users         map[uint]*models.User
	comments      map[uint]*models.CommentHistory
	notifications map[uint]*models.Notification
	nextID        uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		deadlines:     make(map[uint]*models.SubmissionDeadline),
		reports:       make(map[uint]*models.Report),
		templates:     make(map[uint]*models.ReportTemplate),
		branches:      make(map[uint]*models.Branch),
		users:         make(map[uint]*models.User),
		comments:      make(map[uint]*models.CommentHistory),
		notifications: make(map[uint]*models.Notification),
	}
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) addBranch(name string) *models.Branch {
	branch := &models.Branch{BranchID: s.id(), Name: name}
	s.branches[branch.BranchID] = branch
	return branch
}

func (s *fakeStore) addTemplate(name string, p models.Periodicity, category models.ReportCategory) *models.ReportTemplate {
	template := &models.ReportTemplate{TemplateID: s.id(), Name: name, Periodicity: p, Category: category}
	s.templates[template.TemplateID] = template
	return template
}

func (s *fakeStore) addUser(name, role string, branchID *uint) *models.User {
	user := &models.User{
		UserID:   s.id(),
		UserName: name,
		FullName: name,
		BranchID: branchID,
		Role:     &models.Role{RoleName: role},
	}
	s.users[user.UserID] = user
	return user
}

func (s *fakeStore) openDeadlines(templateID, branchID uint) []*models.SubmissionDeadline {
	var open []*models.SubmissionDeadline
	for _, d := range s.deadlines {
		if d.TemplateID == templateID && d.BranchID == branchID && !d.IsClosed {
			open = append(open, d)
		}
	}
	return open
}

func (s *fakeStore) Deadlines() repository.DeadlineRepository         { return fakeDeadlineRepo{s} }
func (s *fakeStore) Reports() repository.ReportRepository             { return fakeReportRepo{s} }
func (s *fakeStore) Templates() repository.TemplateRepository         { return fakeTemplateRepo{s} }
func (s *fakeStore) Branches() repository.BranchRepository            { return fakeBranchRepo{s} }
func (s *fakeStore) Users() repository.UserRepository                 { return fakeUserRepo{s} }
func (s *fakeStore) Comments() repository.CommentRepository           { return fakeCommentRepo{s} }
func (s *fakeStore) Notifications() repository.NotificationRepository { return fakeNotificationRepo{s} }

func (s *fakeStore) WithinTransaction(fn func(repository.Store) error) error {
	return fn(s)
}

type fakeDeadlineRepo struct{ s *fakeStore }

func (r fakeDeadlineRepo) Create(d *models.SubmissionDeadline) error {
	if d.DeadlineID == 0 {
		d.DeadlineID = r.s.id()
	}
	r.s.deadlines[d.DeadlineID] = d
	return nil
}

func (r fakeDeadlineRepo) FindByID(id uint) (*models.SubmissionDeadline, error) {
	d, ok := r.s.deadlines[id]
	if !ok {
		return nil, nil
	}
	r.join(d)
	return d, nil
}

func (r fakeDeadlineRepo) Update(d *models.SubmissionDeadline) error {
	r.s.deadlines[d.DeadlineID] = d
	return nil
}

func (r fakeDeadlineRepo) Delete(id uint) error {
	delete(r.s.deadlines, id)
	return nil
}

func (r fakeDeadlineRepo) FindOpen() ([]models.SubmissionDeadline, error) {
	var ids []uint
	for id, d := range r.s.deadlines {
		if !d.IsClosed {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var open []models.SubmissionDeadline
	for _, id := range ids {
		d := r.s.deadlines[id]
		r.join(d)
		open = append(open, *d)
	}
	return open, nil
}

func (r fakeDeadlineRepo) FindOpenByBranch(branchID uint) ([]models.SubmissionDeadline, error) {
	all, _ := r.FindOpen()
	var out []models.SubmissionDeadline
	for _, d := range all {
		if d.BranchID == branchID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r fakeDeadlineRepo) FindClosedReviewed(templateID, branchID, reportID uint) (*models.SubmissionDeadline, error) {
	for _, d := range r.s.deadlines {
		if d.TemplateID == templateID && d.BranchID == branchID &&
			d.ReportID != nil && *d.ReportID == reportID &&
			d.IsClosed && d.Status == models.StatusReviewed {
			return d, nil
		}
	}
	return nil, nil
}

func (r fakeDeadlineRepo) FindByReportID(reportID uint) (*models.SubmissionDeadline, error) {
	for _, d := range r.s.deadlines {
		if d.ReportID != nil && *d.ReportID == reportID {
			return d, nil
		}
	}
	return nil, nil
}

func (r fakeDeadlineRepo) join(d *models.SubmissionDeadline) {
	d.Template = r.s.templates[d.TemplateID]
	d.Branch = r.s.branches[d.BranchID]
}

type fakeReportRepo struct{ s *fakeStore }

func (r fakeReportRepo) Create(report *models.Report) error {
	if report.ReportID == 0 {
		report.ReportID = r.s.id()
	}
	r.s.reports[report.ReportID] = report
	return nil
}

func (r fakeReportRepo) FindByID(id uint) (*models.Report, error) {
	report, ok := r.s.reports[id]
	if !ok {
		return nil, nil
	}
	return report, nil
}

func (r fakeReportRepo) Update(report *models.Report) error {
	r.s.reports[report.ReportID] = report
	return nil
}

func (r fakeReportRepo) Delete(id uint) error {
	delete(r.s.reports, id)
	return nil
}

func (r fakeReportRepo) FindByPeriod(templateID, branchID uint, year int, month time.Month) (*models.Report, error) {
	for _, report := range r.s.reports {
		if report.TemplateID == templateID && report.BranchID == branchID &&
			report.Period.Year() == year && report.Period.Month() == month {
			return report, nil
		}
	}
	return nil, nil
}

func (r fakeReportRepo) FindClosed(filter repository.ArchiveFilter) ([]models.Report, error) {
	var out []models.Report
	for _, report := range r.s.reports {
		if !report.IsClosed {
			continue
		}
		if filter.Name != "" && !strings.Contains(report.Name, filter.Name) {
			continue
		}
		if filter.TemplateID != nil && report.TemplateID != *filter.TemplateID {
			continue
		}
		if filter.Category != nil && report.Category != *filter.Category {
			continue
		}
		if filter.BranchID != nil && report.BranchID != *filter.BranchID {
			continue
		}
		if filter.PeriodFrom != nil && report.Period.Before(*filter.PeriodFrom) {
			continue
		}
		if filter.PeriodTo != nil && report.Period.After(*filter.PeriodTo) {
			continue
		}
		out = append(out, *report)
	}
	return out, nil
}

type fakeTemplateRepo struct{ s *fakeStore }

func (r fakeTemplateRepo) Create(t *models.ReportTemplate) error {
	if t.TemplateID == 0 {
		t.TemplateID = r.s.id()
	}
	r.s.templates[t.TemplateID] = t
	return nil
}

func (r fakeTemplateRepo) FindByID(id uint) (*models.ReportTemplate, error) {
	t, ok := r.s.templates[id]
	if !ok {
		return nil, nil
	}
	return t, nil
}

func (r fakeTemplateRepo) FindAll() ([]models.ReportTemplate, error) {
	var out []models.ReportTemplate
	for _, t := range r.s.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (r fakeTemplateRepo) Update(t *models.ReportTemplate) error {
	r.s.templates[t.TemplateID] = t
	return nil
}

func (r fakeTemplateRepo) Delete(id uint) error {
	delete(r.s.templates, id)
	return nil
}

type fakeBranchRepo struct{ s *fakeStore }

func (r fakeBranchRepo) Create(b *models.Branch) error {
	if b.BranchID == 0 {
		b.BranchID = r.s.id()
	}
	r.s.branches[b.BranchID] = b
	return nil
}

func (r fakeBranchRepo) FindByID(id uint) (*models.Branch, error) {
	b, ok := r.s.branches[id]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (r fakeBranchRepo) FindAll() ([]models.Branch, error) {
	var ids []uint
	for id := range r.s.branches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []models.Branch
	for _, id := range ids {
		out = append(out, *r.s.branches[id])
	}
	return out, nil
}

func (r fakeBranchRepo) Delete(id uint) error {
	delete(r.s.branches, id)
	return nil
}

type fakeUserRepo struct{ s *fakeStore }

func (r fakeUserRepo) Create(u *models.User) error {
	if u.UserID == 0 {
		u.UserID = r.s.id()
	}
	r.s.users[u.UserID] = u
	return nil
}

func (r fakeUserRepo) FindByID(id uint) (*models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r fakeUserRepo) FindByUserName(name string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.UserName == name {
			return u, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) FindByBranch(branchID uint) ([]models.User, error) {
	var out []models.User
	for _, u := range r.s.users {
		if u.BranchID != nil && *u.BranchID == branchID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r fakeUserRepo) FindByRole(roleName string) ([]models.User, error) {
	var out []models.User
	for _, u := range r.s.users {
		if u.Role != nil && u.Role.RoleName == roleName {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r fakeUserRepo) FindAll() ([]models.User, error) {
	var out []models.User
	for _, u := range r.s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r fakeUserRepo) Update(u *models.User) error {
	r.s.users[u.UserID] = u
	return nil
}

type fakeCommentRepo struct{ s *fakeStore }

func (r fakeCommentRepo) Create(entry *models.CommentHistory) error {
	if entry.CommentID == 0 {
		entry.CommentID = r.s.id()
	}
	r.s.comments[entry.CommentID] = entry
	return nil
}

func (r fakeCommentRepo) FindByID(id uint) (*models.CommentHistory, error) {
	entry, ok := r.s.comments[id]
	if !ok {
		return nil, nil
	}
	return entry, nil
}

func (r fakeCommentRepo) FindByDeadline(deadlineID uint) ([]models.CommentHistory, error) {
	var out []models.CommentHistory
	for _, entry := range r.s.comments {
		if entry.DeadlineID != nil && *entry.DeadlineID == deadlineID {
			out = append(out, *entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r fakeCommentRepo) Delete(id uint) error {
	delete(r.s.comments, id)
	return nil
}

type fakeNotificationRepo struct{ s *fakeStore }

func (r fakeNotificationRepo) Create(n *models.Notification) error {
	if n.NotificationID == 0 {
		n.NotificationID = r.s.id()
	}
	r.s.notifications[n.NotificationID] = n
	return nil
}

func (r fakeNotificationRepo) FindByID(id uint) (*models.Notification, error) {
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, nil
	}
	return n, nil
}

func (r fakeNotificationRepo) FindUnreadByUser(userID uint) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.IsRead {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r fakeNotificationRepo) Update(n *models.Notification) error {
	r.s.notifications[n.NotificationID] = n
	return nil
}

func (r fakeNotificationRepo) Delete(id uint) error {
	delete(r.s.notifications, id)
	return nil
}

// fakeSink records notifications instead of delivering them.
type fakeNote struct {
	userID  uint
	message string
}

type fakeSink struct {
	notes []fakeNote
}

func (f *fakeSink) Notify(_ repository.Store, userID uint, message string) error {
	f.notes = append(f.notes, fakeNote{userID: userID, message: message})
	return nil
}

func (f *fakeSink) messagesFor(userID uint) []string {
	var out []string
	for _, n := range f.notes {
		if n.userID == userID {
			out = append(out, n.message)
		}
	}
	return out
}

// fakeFileStore tracks saves and deletions without touching the disk.
type fakeFileStore struct {
	saved   []string
	deleted []string
}

func (f *fakeFileStore) Save(file *multipart.FileHeader, branchName string, year int, templateName string) (string, error) {
	path := filepath.Join("uploads", "reports", branchName, templateName, file.Filename)
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeFileStore) SaveTemplate(file *multipart.FileHeader) (string, error) {
	path := filepath.Join("uploads", "templates", file.Filename)
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeFileStore) Read(path string) ([]byte, error) {
	return []byte("contents of " + path), nil
}

func (f *fakeFileStore) Delete(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}
