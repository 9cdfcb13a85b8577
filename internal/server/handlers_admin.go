package server

import (
	"net/http"
	"strconv"
	"time"
)

// The admin dashboard API serves fixture data. Real tenancy, scheduling,
// and billing live in a separate service; these routes exist so the
// dashboard renders against this backend in development.

type organization struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Plan       string `json:"plan"`
	Status     string `json:"status"`
	Users      int    `json:"users"`
	Interviews int    `json:"interviews"`
	MRR        int    `json:"mrr"`
}

type interviewRecord struct {
	ID        int    `json:"id"`
	Candidate string `json:"candidate"`
	Position  string `json:"position"`
	Status    string `json:"status"`
	Score     *int   `json:"score"`
	Date      string `json:"date"`
}

var mockOrganizations = []organization{
	{ID: 1, Name: "TechCorp Solutions", Plan: "Enterprise", Status: "Active", Users: 47, Interviews: 1247, MRR: 2499},
	{ID: 2, Name: "Global Innovations Inc", Plan: "Growth", Status: "Active", Users: 18, Interviews: 892, MRR: 999},
	{ID: 3, Name: "DataSync Pro", Plan: "Startup", Status: "Trial", Users: 5, Interviews: 124, MRR: 299},
	{ID: 4, Name: "CloudScale Systems", Plan: "Enterprise", Status: "Active", Users: 92, Interviews: 2156, MRR: 4999},
}

var mockInterviews = []interviewRecord{
	{ID: 1, Candidate: "John Doe", Position: "Senior Developer", Status: "Completed", Score: intPtr(85), Date: "2024-01-15"},
	{ID: 2, Candidate: "Jane Smith", Position: "Product Manager", Status: "Scheduled", Score: nil, Date: "2024-01-20"},
	{ID: 3, Candidate: "Mike Johnson", Position: "Data Analyst", Status: "In Progress", Score: nil, Date: "2024-01-18"},
}

func intPtr(v int) *int { return &v }

func (s *Server) handleAPIHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListOrganizations(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, mockOrganizations)
}

func (s *Server) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err == nil {
		for _, org := range mockOrganizations {
			if org.ID == id {
				s.jsonResponse(w, http.StatusOK, org)
				return
			}
		}
	}
	s.errorResponse(w, http.StatusNotFound, "Organization not found")
}

func (s *Server) handleListInterviews(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, mockInterviews)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"totalOrganizations": 1234,
		"activeUsers":        45678,
		"interviewsToday":    892,
		"monthlyRevenue":     4560000,
		"systemHealth":       99.9,
		"supportTickets":     23,
	})
}
