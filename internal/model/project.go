package model

import (
	"strings"
	"time"
)

type ProjectType string

const (
	ProjectTypeStudent ProjectType = "STUDENT"
	ProjectTypeClient  ProjectType = "CLIENT"
)

type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "NOT_STARTED"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
)

// Project is the root entity. Exactly one of Students (for STUDENT
// projects) or Client (for CLIENT projects) carries the counterparty;
// the inactive branch stays empty. Guides and Payments are common to
// both variants.
type Project struct {
	ID          int64         `json:"id"`
	ProjectType ProjectType   `json:"project_type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Technology  string        `json:"technology"`
	TotalFee    float64       `json:"total_fee"`
	Status      ProjectStatus `json:"status"`
	Students    []Student     `json:"students"`
	Client      *Client       `json:"client"`
	Guides      []Guide       `json:"guides"`
	Payments    []Payment     `json:"payments"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Party resolves the counterparty contact for the project's variant:
// the client's name/phone, or all student names/phones joined by ", ".
func (p *Project) Party() (name, phone string) {
	if p.ProjectType == ProjectTypeClient {
		if p.Client == nil {
			return "", ""
		}
		return p.Client.Name, p.Client.Phone
	}
	names := make([]string, 0, len(p.Students))
	phones := make([]string, 0, len(p.Students))
	for _, s := range p.Students {
		names = append(names, s.Name)
		phones = append(phones, s.Phone)
	}
	return strings.Join(names, ", "), strings.Join(phones, ", ")
}

func ParseProjectType(raw string) (ProjectType, bool) {
	switch ProjectType(strings.ToUpper(strings.TrimSpace(raw))) {
	case ProjectTypeStudent:
		return ProjectTypeStudent, true
	case ProjectTypeClient:
		return ProjectTypeClient, true
	default:
		return "", false
	}
}

func ParseProjectStatus(raw string) (ProjectStatus, bool) {
	switch ProjectStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case ProjectStatusNotStarted:
		return ProjectStatusNotStarted, true
	case ProjectStatusInProgress:
		return ProjectStatusInProgress, true
	case ProjectStatusCompleted:
		return ProjectStatusCompleted, true
	default:
		return "", false
	}
}
