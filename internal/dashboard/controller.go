package dashboard

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/apperror"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/logging"
	"gitlab.com/dirk.krummacker/customer-dashboard/pkg/model"
)

// BasePath is the prefix of all dashboard customer endpoints.
const BasePath = "/dashboard/customer"

// CustomerService is what the dashboard needs from the customer service. CustomerClient is the
// production implementation.
type CustomerService interface {
	FindCustomers(ctx context.Context) ([]model.CustomerDTO, error)
	FindCustomerByID(ctx context.Context, id int64) ([]model.CustomerDTO, error)
	SaveCustomer(ctx context.Context, dto model.CustomerDTO) (model.CustomerDTO, error)
	UpdateCustomer(ctx context.Context, dto model.CustomerDTO) (model.CustomerDTO, error)
}

// Controller serves the dashboard's customer endpoints by forwarding them to the customer
// service. It does not validate customers; the customer service does.
type Controller struct {
	customers CustomerService
	logger    zerolog.Logger
}

// NewController returns a controller forwarding to customers.
func NewController(customers CustomerService) *Controller {
	return &Controller{
		customers: customers,
		logger:    logging.NewPackageLogger("dashboard"),
	}
}

// RegisterRoutes adds all dashboard customer endpoints to the router.
func (dc *Controller) RegisterRoutes(router gin.IRouter) {
	group := router.Group(BasePath)
	group.GET("/all", dc.getAllCustomers)
	group.GET("/:id", dc.findCustomerByID)
	group.POST("/save", dc.createCustomer)
	group.PUT("/update/:id", dc.updateCustomer)
}

// getAllCustomers responds with the list of all customers of the customer service.
//
// Example REST API call:
//
//	> curl http://localhost:8081/dashboard/customer/all
func (dc *Controller) getAllCustomers(c *gin.Context) {
	dc.logger.Info().Msg("attempting to get all customers")
	customers, err := dc.customers.FindCustomers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// findCustomerByID responds with the list the customer service returns for the id.
//
// Example REST API call:
//
//	> curl http://localhost:8081/dashboard/customer/56
func (dc *Controller) findCustomerByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	dc.logger.Info().Int64("id", id).Msg("attempting to search customer")
	customers, err := dc.customers.FindCustomerByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// createCustomer forwards a new customer to the customer service.
//
// Example REST API call:
//
//	> curl http://localhost:8081/dashboard/customer/save --request "POST" --header "Content-Type: application/json" --data '{"firstName": "John", "lastName": "Doe"}'
func (dc *Controller) createCustomer(c *gin.Context) {
	var dto model.CustomerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.Error(apperror.NewBadRequest("invalid JSON"))
		return
	}
	dc.logger.Info().Msg("attempting to create new customer")
	dto.ID = nil
	saved, err := dc.customers.SaveCustomer(c.Request.Context(), dto)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// updateCustomer forwards the customer to the customer service, using the id of the request URL.
//
// Example REST API call:
//
//	> curl http://localhost:8081/dashboard/customer/update/56 --request "PUT" --header "Content-Type: application/json" --data '{"firstName": "Johnny", "lastName": "Doe"}'
func (dc *Controller) updateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var dto model.CustomerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.Error(apperror.NewBadRequest("invalid JSON"))
		return
	}
	dc.logger.Info().Int64("id", id).Msg("attempting to update customer")
	dto.ID = &id
	saved, err := dc.customers.UpdateCustomer(c.Request.Context(), dto)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// parseID only checks that the id is a number; its range is checked by the customer service.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.NewBadRequest("id: must be a number"))
		return 0, false
	}
	return id, true
}
