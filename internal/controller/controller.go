package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/apperror"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/logging"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/model"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/service"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/validation"
)

// BasePath is the prefix of all customer endpoints.
const BasePath = "/api/customer"

// CustomerController exposes the customer service over REST. Handlers validate their input,
// call the service and record failures with c.Error; the error handler of the router writes
// the error response.
type CustomerController struct {
	service *service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerController returns a controller for the service.
func NewCustomerController(s *service.CustomerService) *CustomerController {
	return &CustomerController{
		service: s,
		logger:  logging.NewPackageLogger("controller"),
	}
}

// RegisterRoutes adds all customer endpoints to the router.
func (cc *CustomerController) RegisterRoutes(router gin.IRouter) {
	group := router.Group(BasePath)
	group.GET("/all", cc.getAllCustomers)
	group.GET("/:id", cc.findCustomerByID)
	group.POST("/save", cc.saveCustomer)
	group.PUT("/update/:id", cc.updateCustomer)
}

// getAllCustomers responds with the list of all customers, which may be empty.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/customer/all
func (cc *CustomerController) getAllCustomers(c *gin.Context) {
	cc.logger.Info().Msg("attempting to fetch all customers")
	customers, err := cc.service.FindCustomers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// findCustomerByID responds with a list holding the customer whose id matches the id parameter
// of the request URL.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/customer/56
func (cc *CustomerController) findCustomerByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cc.logger.Info().Int64("id", id).Msg("attempting to find customer")
	customers, err := cc.service.FindCustomerByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if len(customers) == 0 {
		c.Error(apperror.NewCustomerNotFound(id))
		return
	}
	c.JSON(http.StatusOK, customers)
}

// saveCustomer creates a new customer from the request's JSON. An id in the body is ignored, the
// database assigns it. It responds with the stored customer including its id.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/customer/save --request "POST" --header "Content-Type: application/json" --data '{"firstName": "John", "middleName": "Smith", "lastName": "Doe"}'
func (cc *CustomerController) saveCustomer(c *gin.Context) {
	dto, ok := bindCustomer(c)
	if !ok {
		return
	}
	cc.logger.Info().Msg("attempting to save customer")
	dto.ID = nil
	saved, err := cc.service.SaveCustomer(c.Request.Context(), dto)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// updateCustomer replaces the customer whose id matches the id parameter of the request URL.
// The id of the URL wins over an id in the body. Unknown ids are rejected instead of creating a
// new customer.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/customer/update/56 --request "PUT" --header "Content-Type: application/json" --data '{"firstName": "Johnny", "lastName": "Doe"}'
func (cc *CustomerController) updateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	dto, ok := bindCustomer(c)
	if !ok {
		return
	}
	cc.logger.Info().Int64("id", id).Msg("attempting to update customer")
	count, err := cc.service.CountCustomerWithID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if count == 0 {
		c.Error(apperror.NewCustomerNotFound(id))
		return
	}
	dto.ID = &id
	saved, err := cc.service.SaveCustomer(c.Request.Context(), dto)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// parseID reads and validates the id parameter of the request URL.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.NewBadRequest("id: must be a number"))
		return 0, false
	}
	if err := validation.ValidateID("id", id).Err(); err != nil {
		c.Error(err)
		return 0, false
	}
	return id, true
}

// bindCustomer reads and validates the customer of the request body.
func bindCustomer(c *gin.Context) (model.CustomerDTO, bool) {
	var dto model.CustomerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.Error(apperror.NewBadRequest("invalid JSON"))
		return dto, false
	}
	if err := validation.ValidateCustomer(dto).Err(); err != nil {
		c.Error(err)
		return dto, false
	}
	return dto, true
}
