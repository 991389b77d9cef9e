package api

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultIssueTitle is used when neither the job nor the global config sets a title
	DefaultIssueTitle = "$JOB_NAME $BUILD_DISPLAY_NAME failed"

	// DefaultIssueBody is used when neither the job nor the global config sets a body
	DefaultIssueBody = "Build '$JOB_NAME' is failing!\n\nLast 50 lines of build output:\n\n```\n${OUTPUT, lines=50}\n```\n\n[View full output]($BUILD_URL)"

	// FixedComment is posted on the issue right before it gets closed
	FixedComment = "Build was fixed!"
)

// APIConfig represent the configuration for the entire application
type APIConfig struct {
	APIServer    *APIServerConfig       `yaml:"apiServer,omitempty" env:",prefix=API_SERVER_"`
	Integrations *APIConfigIntegrations `yaml:"integrations,omitempty" env:",prefix=INTEGRATIONS_"`
	Database     *DatabaseConfig        `yaml:"database,omitempty" env:",prefix=DATABASE_"`
	Queue        *QueueConfig           `yaml:"queue,omitempty"`
	Issues       *IssueTemplateConfig   `yaml:"issues,omitempty"`
	Jobs         map[string]*JobConfig  `yaml:"jobs,omitempty"`
}

func (c *APIConfig) SetDefaults() {
	if c.APIServer == nil {
		c.APIServer = &APIServerConfig{}
	}
	c.APIServer.SetDefaults()

	if c.Integrations == nil {
		c.Integrations = &APIConfigIntegrations{}
	}
	c.Integrations.SetDefaults()

	if c.Database == nil {
		c.Database = &DatabaseConfig{}
	}
	c.Database.SetDefaults()

	if c.Queue == nil {
		c.Queue = &QueueConfig{}
	}
	c.Queue.SetDefaults()

	if c.Issues == nil {
		c.Issues = &IssueTemplateConfig{}
	}
	c.Issues.SetDefaults()

	if c.Jobs == nil {
		c.Jobs = map[string]*JobConfig{}
	}
	for _, j := range c.Jobs {
		if j != nil {
			j.SetDefaults()
		}
	}
}

func (c *APIConfig) Validate() (err error) {
	err = c.APIServer.Validate()
	if err != nil {
		return
	}

	err = c.Integrations.Validate()
	if err != nil {
		return
	}

	err = c.Database.Validate()
	if err != nil {
		return
	}

	err = c.Queue.Validate()
	if err != nil {
		return
	}

	err = c.Issues.Validate()
	if err != nil {
		return
	}

	for name, j := range c.Jobs {
		if j == nil {
			continue
		}
		err = j.Validate()
		if err != nil {
			return fmt.Errorf("Configuration for job '%v' is invalid: %w", name, err)
		}
	}

	return nil
}

// GetJobConfig returns the per-job config, or an empty one for jobs without overrides
func (c *APIConfig) GetJobConfig(jobName string) JobConfig {
	if c.Jobs != nil {
		if j, ok := c.Jobs[jobName]; ok && j != nil {
			return *j
		}
	}
	j := JobConfig{}
	j.SetDefaults()
	return j
}

// APIServerConfig represents configuration for the api server
type APIServerConfig struct {
	BaseURL string `yaml:"baseURL"`
	APIKey  string `yaml:"apiKey" env:"API_KEY,overwrite"`
}

func (c *APIServerConfig) SetDefaults() {
}

func (c *APIServerConfig) Validate() (err error) {
	return nil
}

// APIConfigIntegrations contains config for 3rd party integrations
type APIConfigIntegrations struct {
	Github *GithubConfig `yaml:"github,omitempty" env:",prefix=GITHUB_"`
}

func (c *APIConfigIntegrations) SetDefaults() {
	if c.Github == nil {
		c.Github = &GithubConfig{}
	}
	c.Github.SetDefaults()
}

func (c *APIConfigIntegrations) Validate() (err error) {
	return c.Github.Validate()
}

// GithubConfig is used to configure the github issue tracker
type GithubConfig struct {
	Enable         bool   `yaml:"enable"`
	APIURL         string `yaml:"apiURL"`
	WebHost        string `yaml:"webHost"`
	Token          string `yaml:"token" env:"TOKEN,overwrite"`
	AppID          string `yaml:"appID" env:"APP_ID,overwrite"`
	PrivateKeyPath string `yaml:"privateKeyPath" env:"PRIVATE_KEY_PATH,overwrite"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	MaxRetries     int    `yaml:"maxRetries"`
}

func (c *GithubConfig) SetDefaults() {
	if c.APIURL == "" {
		c.APIURL = "https://api.github.com"
	}
	c.APIURL = strings.TrimSuffix(c.APIURL, "/")
	if c.WebHost == "" {
		c.WebHost = "github.com"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	} else if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
}

func (c *GithubConfig) Validate() (err error) {
	if !c.Enable {
		return nil
	}
	if c.Token == "" && (c.AppID == "" || c.PrivateKeyPath == "") {
		return errors.New("Configuration item 'integrations.github.token' or both 'integrations.github.appID' and 'integrations.github.privateKeyPath' are required; please set them to credentials that can create issues")
	}
	if c.APIURL == "" {
		return errors.New("Configuration item 'integrations.github.apiURL' is required; please set it to the github api url")
	}
	return nil
}

// UsesApp is true when the client authenticates as a github app instead of with a token
func (c *GithubConfig) UsesApp() bool {
	return c.Token == "" && c.AppID != "" && c.PrivateKeyPath != ""
}

// DatabaseConfig contains config for the database connection
type DatabaseConfig struct {
	Enable                   bool   `yaml:"enable"`
	DatabaseName             string `yaml:"databaseName"`
	Host                     string `yaml:"host" env:"HOST,overwrite"`
	Insecure                 bool   `yaml:"insecure"`
	SslMode                  string `yaml:"sslMode"`
	CertificateAuthorityPath string `yaml:"certificateAuthorityPath"`
	CertificatePath          string `yaml:"certificatePath"`
	CertificateKeyPath       string `yaml:"certificateKeyPath"`
	Port                     int    `yaml:"port"`
	User                     string `yaml:"user" env:"USER,overwrite"`
	Password                 string `yaml:"password" env:"PASSWORD,overwrite"`
	MaxOpenConns             int    `yaml:"maxOpenConnections"`
	MaxIdleConns             int    `yaml:"maxIdleConnections"`
	ConnMaxLifetimeMinutes   int    `yaml:"connectionMaxLifetimeMinutes"`
}

func (c *DatabaseConfig) SetDefaults() {
	if c.DatabaseName == "" {
		c.DatabaseName = "defaultdb"
	}
	if c.Host == "" {
		c.Host = "estafette-ci-db-public"
	}
	if c.SslMode == "" {
		c.SslMode = "verify-full"
	}
	if c.CertificateAuthorityPath == "" {
		c.CertificateAuthorityPath = "/cockroach-certs/ca.crt"
	}
	if c.CertificatePath == "" {
		c.CertificatePath = "/cockroach-certs/tls.crt"
	}
	if c.CertificateKeyPath == "" {
		c.CertificateKeyPath = "/cockroach-certs/tls.key"
	}
	if c.Port <= 0 {
		c.Port = 26257
	}
	if c.User == "" {
		c.User = "root"
	}
	if c.MaxOpenConns < 0 {
		c.MaxOpenConns = 0
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 2
	}
	if c.ConnMaxLifetimeMinutes < 0 {
		c.ConnMaxLifetimeMinutes = 0
	}
}

func (c *DatabaseConfig) Validate() (err error) {
	if !c.Enable {
		return nil
	}
	if c.DatabaseName == "" {
		return errors.New("Configuration item 'database.databaseName' is required; please set it to name of the database used by the service")
	}
	if c.Host == "" {
		return errors.New("Configuration item 'database.host' is required; please set it to hostname of the database server")
	}
	if c.Port <= 0 {
		return errors.New("Configuration item 'database.port' is required; please set it to port of the database server")
	}
	if c.User == "" {
		return errors.New("Configuration item 'database.user' is required; please set it to the database user")
	}
	if c.MaxOpenConns > 0 && c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("Configuration item 'database.maxIdleConnections' needs to be less or equal to 'database.maxOpenConnections'; please set it to a valid number")
	}

	return nil
}

// DataSourceName returns the postgres connection string for the configured database
func (c *DatabaseConfig) DataSourceName() string {
	userAndPassword := c.User
	if c.Password != "" {
		userAndPassword += ":" + c.Password
	}

	if c.Insecure {
		return fmt.Sprintf("postgresql://%v@%v:%v/%v?sslmode=disable", userAndPassword, c.Host, c.Port, c.DatabaseName)
	}

	return fmt.Sprintf("postgresql://%v@%v:%v/%v?sslmode=%v&sslrootcert=%v&sslcert=%v&sslkey=%v", userAndPassword, c.Host, c.Port, c.DatabaseName, c.SslMode, c.CertificateAuthorityPath, c.CertificatePath, c.CertificateKeyPath)
}

// QueueConfig contains config for the nats queue
type QueueConfig struct {
	Enable                bool     `yaml:"enable"`
	Hosts                 []string `yaml:"hosts"`
	QueueGroup            string   `yaml:"queueGroup"`
	SubjectBuildCompleted string   `yaml:"subjectBuildCompleted"`
	SubjectIssueDecision  string   `yaml:"subjectIssueDecision"`
	MaxWorkers            int      `yaml:"maxWorkers"`
	BufferSize            int      `yaml:"bufferSize"`
}

func (c *QueueConfig) SetDefaults() {
	if len(c.Hosts) == 0 {
		c.Hosts = []string{"estafette-ci-queue-0.estafette-ci-queue"}
	}
	if c.QueueGroup == "" {
		c.QueueGroup = "estafette-ci-issues"
	}
	if c.SubjectBuildCompleted == "" {
		c.SubjectBuildCompleted = "event.build.completed"
	}
	if c.SubjectIssueDecision == "" {
		c.SubjectIssueDecision = "event.issue.decision"
	}
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = 5
	}
	if c.BufferSize <= 0 {
		c.BufferSize = 100
	}
}

func (c *QueueConfig) Validate() (err error) {
	if !c.Enable {
		return nil
	}
	if len(c.Hosts) == 0 {
		return errors.New("Configuration item 'queue.hosts' is required; please set it to name of the queue hosts")
	}
	if c.SubjectBuildCompleted == "" {
		return errors.New("Configuration item 'queue.subjectBuildCompleted' is required; please set it to subject of the queue for build completed events")
	}
	if c.SubjectIssueDecision == "" {
		return errors.New("Configuration item 'queue.subjectIssueDecision' is required; please set it to subject of the queue for issue decisions")
	}
	return nil
}

// IssueTemplateConfig holds the global defaults for rendering issues
type IssueTemplateConfig struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Label string `yaml:"label"`
}

func (c *IssueTemplateConfig) SetDefaults() {
	if strings.TrimSpace(c.Title) == "" {
		c.Title = DefaultIssueTitle
	}
	if strings.TrimSpace(c.Body) == "" {
		c.Body = DefaultIssueBody
	}
}

func (c *IssueTemplateConfig) Validate() (err error) {
	return nil
}

// JobConfig holds the per-job overrides; blank fields fall back to the global defaults
type JobConfig struct {
	Title       string `yaml:"title"`
	Body        string `yaml:"body"`
	Label       string `yaml:"label"`
	Repository  string `yaml:"repository"`
	ReopenIssue *bool  `yaml:"reopenIssue"`
	AppendIssue *bool  `yaml:"appendIssue"`
}

func (c *JobConfig) SetDefaults() {
	if c.ReopenIssue == nil {
		c.ReopenIssue = boolPtr(true)
	}
	if c.AppendIssue == nil {
		c.AppendIssue = boolPtr(true)
	}
}

func (c *JobConfig) Validate() (err error) {
	return nil
}

// ShouldReopenIssue defaults to true when unset
func (c JobConfig) ShouldReopenIssue() bool {
	return c.ReopenIssue == nil || *c.ReopenIssue
}

// ShouldAppendIssue defaults to true when unset
func (c JobConfig) ShouldAppendIssue() bool {
	return c.AppendIssue == nil || *c.AppendIssue
}

func boolPtr(b bool) *bool {
	return &b
}
