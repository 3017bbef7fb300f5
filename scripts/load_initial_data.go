package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"crm-backend/internal/config"
	"crm-backend/internal/database"
	"crm-backend/internal/database/models"
	"crm-backend/internal/security"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type OrganizationData struct {
	Name string `yaml:"name"`
}

type UserData struct {
	Name             string `yaml:"name"`
	Email            string `yaml:"email"`
	Password         string `yaml:"password"`
	OrganizationName string `yaml:"organization_name"`
}

type CompanyData struct {
	Name             string `yaml:"name"`
	OrganizationName string `yaml:"organization_name"`
	Domain           string `yaml:"domain"`
	Industry         string `yaml:"industry"`
	Employees        string `yaml:"employees"`
	Revenue          string `yaml:"revenue"`
	City             string `yaml:"city"`
	State            string `yaml:"state"`
	Country          string `yaml:"country"`
	Description      string `yaml:"description"`
	LifecycleStage   string `yaml:"lifecycle_stage"`
}

type ContactData struct {
	FirstName        string `yaml:"first_name"`
	LastName         string `yaml:"last_name"`
	Email            string `yaml:"email"`
	Phone            string `yaml:"phone"`
	JobTitle         string `yaml:"job_title"`
	LifecycleStage   string `yaml:"lifecycle_stage"`
	OrganizationName string `yaml:"organization_name"`
	CompanyName      string `yaml:"company_name,omitempty"`
}

type DealData struct {
	Name             string `yaml:"name"`
	Amount           string `yaml:"amount"`
	Stage            string `yaml:"stage"`
	CloseDate        string `yaml:"close_date,omitempty"`
	OrganizationName string `yaml:"organization_name"`
	CompanyName      string `yaml:"company_name,omitempty"`
}

type TaskData struct {
	Title            string `yaml:"title"`
	Description      string `yaml:"description"`
	DueDate          string `yaml:"due_date,omitempty"`
	Priority         string `yaml:"priority"`
	OrganizationName string `yaml:"organization_name"`
	CompanyName      string `yaml:"company_name,omitempty"`
	ContactEmail     string `yaml:"contact_email,omitempty"`
}

// SeedFile is the shape of every YAML file in the data directory. Each file fills whichever sections it needs.
type SeedFile struct {
	Organizations []OrganizationData `yaml:"organizations"`
	Users         []UserData         `yaml:"users"`
	Companies     []CompanyData      `yaml:"companies"`
	Contacts      []ContactData      `yaml:"contacts"`
	Deals         []DealData         `yaml:"deals"`
	Tasks         []TaskData         `yaml:"tasks"`
}

const dateLayout = "2006-01-02"

func main() {
	log.Println("🚀 Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	dataDir := cfg.SeedDataDir
	if dataDir == "" {
		dataDir = "scripts/data"
	}

	if err := loadDataFromYAMLFiles(db, dataDir, security.NewHasher(cfg.BcryptCost)); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("✅ Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

// readSeedFiles merges every .yaml file found under dataDir
func readSeedFiles(dataDir string) (*SeedFile, error) {
	all := &SeedFile{}

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !(strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var file SeedFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		all.Organizations = append(all.Organizations, file.Organizations...)
		all.Users = append(all.Users, file.Users...)
		all.Companies = append(all.Companies, file.Companies...)
		all.Contacts = append(all.Contacts, file.Contacts...)
		all.Deals = append(all.Deals, file.Deals...)
		all.Tasks = append(all.Tasks, file.Tasks...)
		return nil
	})

	return all, err
}

type seeder struct {
	db        *gorm.DB
	hasher    security.PasswordHasher
	orgs      map[string]*models.Organization
	companies map[string]*models.Company
	contacts  map[string]*models.Contact
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string, hasher security.PasswordHasher) error {
	data, err := readSeedFiles(dataDir)
	if err != nil {
		return fmt.Errorf("failed to read seed files: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		s := &seeder{
			db:        tx,
			hasher:    hasher,
			orgs:      make(map[string]*models.Organization),
			companies: make(map[string]*models.Company),
			contacts:  make(map[string]*models.Contact),
		}
		return s.run(data)
	})
}

func (s *seeder) run(data *SeedFile) error {
	created := 0
	for _, orgData := range data.Organizations {
		org, isNew, err := s.createOrganization(orgData)
		if err != nil {
			return fmt.Errorf("failed to create organization %s: %w", orgData.Name, err)
		}
		s.orgs[orgData.Name] = org
		if isNew {
			created++
		}
	}
	log.Printf("📋 Organizations: %d created, %d total", created, len(data.Organizations))

	created = 0
	for _, userData := range data.Users {
		isNew, err := s.createUser(userData)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Email, err)
		}
		if isNew {
			created++
		}
	}
	log.Printf("📋 Users: %d created, %d total", created, len(data.Users))

	created = 0
	for _, companyData := range data.Companies {
		isNew, err := s.createCompany(companyData)
		if err != nil {
			return fmt.Errorf("failed to create company %s: %w", companyData.Name, err)
		}
		if isNew {
			created++
		}
	}
	log.Printf("📋 Companies: %d created, %d total", created, len(data.Companies))

	created = 0
	for _, contactData := range data.Contacts {
		isNew, err := s.createContact(contactData)
		if err != nil {
			return fmt.Errorf("failed to create contact %s: %w", contactData.Email, err)
		}
		if isNew {
			created++
		}
	}
	log.Printf("📋 Contacts: %d created, %d total", created, len(data.Contacts))

	created = 0
	for _, dealData := range data.Deals {
		isNew, err := s.createDeal(dealData)
		if err != nil {
			return fmt.Errorf("failed to create deal %s: %w", dealData.Name, err)
		}
		if isNew {
			created++
		}
	}
	log.Printf("📋 Deals: %d created, %d total", created, len(data.Deals))

	created = 0
	for _, taskData := range data.Tasks {
		isNew, err := s.createTask(taskData)
		if err != nil {
			return fmt.Errorf("failed to create task %s: %w", taskData.Title, err)
		}
		if isNew {
			created++
		}
	}
	log.Printf("📋 Tasks: %d created, %d total", created, len(data.Tasks))

	return nil
}

func (s *seeder) org(name string) (*models.Organization, error) {
	org := s.orgs[name]
	if org == nil {
		return nil, fmt.Errorf("organization %q not found", name)
	}
	return org, nil
}

func (s *seeder) companyID(orgID uuid.UUID, name string) (*uuid.UUID, error) {
	if name == "" {
		return nil, nil
	}
	company := s.companies[orgID.String()+"/"+name]
	if company == nil {
		return nil, fmt.Errorf("company %q not found", name)
	}
	return &company.ID, nil
}

// findOrCreate looks up a row with the given conditions and inserts record when none exists
func findOrCreate(db *gorm.DB, record interface{}, query string, args ...interface{}) (bool, error) {
	err := db.Where(query, args...).First(record).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to query: %w", err)
	}
	if err := db.Create(record).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (s *seeder) createOrganization(orgData OrganizationData) (*models.Organization, bool, error) {
	org := &models.Organization{Name: orgData.Name}
	created, err := findOrCreate(s.db, org, "name = ?", orgData.Name)
	return org, created, err
}

func (s *seeder) createUser(userData UserData) (bool, error) {
	org, err := s.org(userData.OrganizationName)
	if err != nil {
		return false, err
	}

	email := strings.ToLower(strings.TrimSpace(userData.Email))
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to query user: %w", err)
	}

	hash, err := s.hasher.Hash(userData.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:           userData.Name,
		Email:          email,
		PasswordHash:   hash,
		OrganizationID: &org.ID,
	}
	if err := s.db.Create(user).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (s *seeder) createCompany(companyData CompanyData) (bool, error) {
	org, err := s.org(companyData.OrganizationName)
	if err != nil {
		return false, err
	}

	stage := companyData.LifecycleStage
	if stage == "" {
		stage = models.CompanyDefaultLifecycleStage
	}

	company := &models.Company{
		TenantModel:    models.TenantModel{OrganizationID: org.ID},
		Name:           companyData.Name,
		Domain:         companyData.Domain,
		Industry:       companyData.Industry,
		Employees:      companyData.Employees,
		Revenue:        companyData.Revenue,
		City:           companyData.City,
		State:          companyData.State,
		Country:        companyData.Country,
		Description:    companyData.Description,
		LifecycleStage: stage,
	}
	created, err := findOrCreate(s.db, company, "organization_id = ? AND name = ?", org.ID, companyData.Name)
	if err != nil {
		return false, err
	}
	s.companies[org.ID.String()+"/"+company.Name] = company
	return created, nil
}

func (s *seeder) createContact(contactData ContactData) (bool, error) {
	org, err := s.org(contactData.OrganizationName)
	if err != nil {
		return false, err
	}
	companyID, err := s.companyID(org.ID, contactData.CompanyName)
	if err != nil {
		return false, err
	}

	stage := contactData.LifecycleStage
	if stage == "" {
		stage = models.ContactDefaultLifecycleStage
	}

	contact := &models.Contact{
		TenantModel:    models.TenantModel{OrganizationID: org.ID},
		FirstName:      contactData.FirstName,
		LastName:       contactData.LastName,
		Email:          contactData.Email,
		Phone:          contactData.Phone,
		JobTitle:       contactData.JobTitle,
		LifecycleStage: stage,
		CompanyID:      companyID,
	}
	created, err := findOrCreate(s.db, contact, "organization_id = ? AND email = ?", org.ID, contactData.Email)
	if err != nil {
		return false, err
	}
	s.contacts[org.ID.String()+"/"+contact.Email] = contact
	return created, nil
}

func (s *seeder) createDeal(dealData DealData) (bool, error) {
	org, err := s.org(dealData.OrganizationName)
	if err != nil {
		return false, err
	}
	companyID, err := s.companyID(org.ID, dealData.CompanyName)
	if err != nil {
		return false, err
	}

	stage := models.DealStage(dealData.Stage)
	if !stage.IsValid() {
		return false, fmt.Errorf("unknown stage %q", dealData.Stage)
	}

	amount := decimal.Zero
	if dealData.Amount != "" {
		if amount, err = decimal.NewFromString(dealData.Amount); err != nil {
			return false, fmt.Errorf("invalid amount %q: %w", dealData.Amount, err)
		}
	}

	closeDate, err := parseDate(dealData.CloseDate)
	if err != nil {
		return false, err
	}

	deal := &models.Deal{
		TenantModel: models.TenantModel{OrganizationID: org.ID},
		Name:        dealData.Name,
		Amount:      amount,
		Stage:       stage,
		CloseDate:   closeDate,
		CompanyID:   companyID,
	}
	return findOrCreate(s.db, deal, "organization_id = ? AND name = ?", org.ID, dealData.Name)
}

func (s *seeder) createTask(taskData TaskData) (bool, error) {
	org, err := s.org(taskData.OrganizationName)
	if err != nil {
		return false, err
	}
	companyID, err := s.companyID(org.ID, taskData.CompanyName)
	if err != nil {
		return false, err
	}

	var contactID *uuid.UUID
	if taskData.ContactEmail != "" {
		contact := s.contacts[org.ID.String()+"/"+taskData.ContactEmail]
		if contact == nil {
			return false, fmt.Errorf("contact %q not found", taskData.ContactEmail)
		}
		contactID = &contact.ID
	}

	priority := models.TaskPriority(taskData.Priority)
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.IsValid() {
		return false, fmt.Errorf("unknown priority %q", taskData.Priority)
	}

	dueDate, err := parseDate(taskData.DueDate)
	if err != nil {
		return false, err
	}

	task := &models.Task{
		TenantModel: models.TenantModel{OrganizationID: org.ID},
		Title:       taskData.Title,
		Description: taskData.Description,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      models.TaskStatusPending,
		ContactID:   contactID,
		CompanyID:   companyID,
	}
	return findOrCreate(s.db, task, "organization_id = ? AND title = ?", org.ID, taskData.Title)
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return &t, nil
}
