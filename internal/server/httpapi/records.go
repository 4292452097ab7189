package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/gin-gonic/gin"
)

type clientRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Address *string `json:"address"`
	Status  string  `json:"status"`
}

func (r clientRequest) model() *models.Client {
	return &models.Client{
		Name: r.Name, Email: r.Email, Phone: r.Phone, Company: r.Company, Address: r.Address, Status: r.Status,
	}
}

type projectRequest struct {
	Name        string   `json:"name" binding:"required"`
	ClientID    string   `json:"client_id" binding:"required"`
	Description *string  `json:"description"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Status      string   `json:"status"`
	Budget      *float64 `json:"budget"`
	TeamMembers []string `json:"team_members"`
}

func (r projectRequest) model() *models.Project {
	return &models.Project{
		Name: r.Name, ClientID: r.ClientID, Description: r.Description, StartDate: r.StartDate,
		EndDate: r.EndDate, Status: r.Status, Budget: r.Budget, TeamMembers: r.TeamMembers,
	}
}

type invoiceItemRequest struct {
	Description string   `json:"description" binding:"required"`
	Quantity    *int     `json:"quantity" binding:"required"`
	Rate        *float64 `json:"rate" binding:"required"`
	Amount      *float64 `json:"amount" binding:"required"`
}

type invoiceRequest struct {
	ClientID  string               `json:"client_id" binding:"required"`
	ProjectID *string              `json:"project_id"`
	Amount    *float64             `json:"amount" binding:"required"`
	Status    string               `json:"status"`
	DueDate   string               `json:"due_date" binding:"required"`
	Items     []invoiceItemRequest `json:"items" binding:"dive"`
	Notes     *string              `json:"notes"`
}

func (r invoiceRequest) model() *models.Invoice {
	items := make([]models.InvoiceItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, models.InvoiceItem{
			Description: it.Description, Quantity: *it.Quantity, Rate: *it.Rate, Amount: *it.Amount,
		})
	}
	return &models.Invoice{
		ClientID: r.ClientID, ProjectID: r.ProjectID, Amount: *r.Amount, Status: r.Status,
		DueDate: r.DueDate, Items: items, Notes: r.Notes,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// clients

func (s *HTTPServer) createClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	out, err := s.deps.Clients.Create(c.Request.Context(), req.model())
	s.respond(c, out, err)
}

func (s *HTTPServer) listClients(c *gin.Context) {
	out, err := s.deps.Clients.List(c.Request.Context())
	s.respond(c, out, err)
}

func (s *HTTPServer) getClient(c *gin.Context) {
	out, err := s.deps.Clients.Get(c.Request.Context(), c.Param("id"))
	s.respond(c, out, err)
}

func (s *HTTPServer) updateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	out, err := s.deps.Clients.Update(c.Request.Context(), c.Param("id"), req.model())
	s.respond(c, out, err)
}

func (s *HTTPServer) deleteClient(c *gin.Context) {
	err := s.deps.Clients.Delete(c.Request.Context(), c.Param("id"))
	s.respond(c, messageResponse{Message: "Client deleted successfully"}, err)
}

// projects

func (s *HTTPServer) createProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	out, err := s.deps.Projects.Create(c.Request.Context(), req.model())
	s.respond(c, out, err)
}

func (s *HTTPServer) listProjects(c *gin.Context) {
	out, err := s.deps.Projects.List(c.Request.Context())
	s.respond(c, out, err)
}

func (s *HTTPServer) getProject(c *gin.Context) {
	out, err := s.deps.Projects.Get(c.Request.Context(), c.Param("id"))
	s.respond(c, out, err)
}

func (s *HTTPServer) updateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	out, err := s.deps.Projects.Update(c.Request.Context(), c.Param("id"), req.model())
	s.respond(c, out, err)
}

func (s *HTTPServer) deleteProject(c *gin.Context) {
	err := s.deps.Projects.Delete(c.Request.Context(), c.Param("id"))
	s.respond(c, messageResponse{Message: "Project deleted successfully"}, err)
}

// invoices

func (s *HTTPServer) createInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	out, err := s.deps.Invoices.Create(c.Request.Context(), req.model())
	s.respond(c, out, err)
}

func (s *HTTPServer) listInvoices(c *gin.Context) {
	out, err := s.deps.Invoices.List(c.Request.Context())
	s.respond(c, out, err)
}

func (s *HTTPServer) getInvoice(c *gin.Context) {
	out, err := s.deps.Invoices.Get(c.Request.Context(), c.Param("id"))
	s.respond(c, out, err)
}

func (s *HTTPServer) updateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	out, err := s.deps.Invoices.Update(c.Request.Context(), c.Param("id"), req.model())
	s.respond(c, out, err)
}

func (s *HTTPServer) deleteInvoice(c *gin.Context) {
	err := s.deps.Invoices.Delete(c.Request.Context(), c.Param("id"))
	s.respond(c, messageResponse{Message: "Invoice deleted successfully"}, err)
}

func (s *HTTPServer) uploadAttachment(c *gin.Context) {
	out, err := s.deps.Invoices.PresignAttachmentUpload(c.Request.Context(), c.Param("id"))
	s.respond(c, out, err)
}

func (s *HTTPServer) downloadAttachment(c *gin.Context) {
	out, err := s.deps.Invoices.PresignAttachmentDownload(c.Request.Context(), c.Param("id"))
	s.respond(c, out, err)
}

func (s *HTTPServer) respond(c *gin.Context, body any, err error) {
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}
