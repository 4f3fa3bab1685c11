package export

import (
	"time"

	"github.com/agriprojet/agriprojet/internal/projects"
)

// Document is the input of every renderer: the company a plan is written for
// and its computed report.
type Document struct {
	Company     projects.Company
	Report      projects.Report
	GeneratedAt time.Time
}

// NewDocument pairs a project with its report.
func NewDocument(p projects.Project, report projects.Report, at time.Time) Document {
	return Document{Company: p.Company, Report: report, GeneratedAt: at}
}
