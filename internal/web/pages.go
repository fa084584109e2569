package web

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/imrishuroy/go-restaurant-orders/internal/client"
	"github.com/imrishuroy/go-restaurant-orders/internal/menu"
	"github.com/imrishuroy/go-restaurant-orders/internal/orders"
	"github.com/imrishuroy/go-restaurant-orders/internal/reservations"
)

type pages struct {
	api API
}

// view is the data every template receives.
type view struct {
	Title string
	Error string
	Data  interface{}
}

type menuGroup struct {
	Category string
	Items    []menu.MenuItem
}

type orderForm struct {
	Quantity            string
	CustomerName        string
	CustomerPhone       string
	CustomerEmail       string
	OrderType           string
	DeliveryAddress     string
	SpecialInstructions string
}

type orderFormData struct {
	Item           *menu.MenuItem
	Form           orderForm
	IdempotencyKey string
}

type reservationForm struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	Date            string
	Time            string
	NumberOfGuests  string
	SpecialRequests string
}

type reservationFormData struct {
	Form           reservationForm
	IdempotencyKey string
}

// pendingData is shown when a create is answered with client.ErrInProgress.
type pendingData struct {
	What          string
	CustomerName  string
	CustomerPhone string
	TrackOrders   bool
}

type adminData struct {
	Stats               *client.Stats
	Orders              []orders.Order
	Reservations        []reservations.Reservation
	OrderStatuses       []string
	ReservationStatuses []string
}

// fail renders the error page. API errors keep their status and message,
// anything else is a 502 since the API could not be reached.
func fail(c *gin.Context, err error) {
	var ae *client.APIError
	if errors.As(err, &ae) {
		status := ae.Status
		if status < 400 {
			status = http.StatusBadGateway
		}
		c.HTML(status, "error.html", view{Title: "Something went wrong", Error: ae.Message})
		return
	}
	log.Printf("[web] api call failed: %v", err)
	c.HTML(http.StatusBadGateway, "error.html", view{Title: "Something went wrong", Error: "The restaurant service is unavailable, please try again later."})
}

// message returns a user-facing message for a failed form submission.
func message(err error) (string, bool) {
	var ae *client.APIError
	if errors.As(err, &ae) && ae.Status == http.StatusBadRequest {
		return ae.Message, true
	}
	return "", false
}

func (p *pages) home(c *gin.Context) {
	items, err := p.api.ListMenu(c.Request.Context(), "")
	if err != nil {
		fail(c, err)
		return
	}
	available := 0
	for _, it := range items {
		if it.Available {
			available++
		}
	}
	c.HTML(http.StatusOK, "home.html", view{Title: "Welcome", Data: gin.H{"MenuCount": available}})
}

// groupByCategory splits items, already sorted by category, into groups.
func groupByCategory(items []menu.MenuItem) []menuGroup {
	var groups []menuGroup
	for _, it := range items {
		if n := len(groups); n == 0 || groups[n-1].Category != it.Category {
			groups = append(groups, menuGroup{Category: it.Category})
		}
		groups[len(groups)-1].Items = append(groups[len(groups)-1].Items, it)
	}
	return groups
}

func (p *pages) menu(c *gin.Context) {
	ctx := c.Request.Context()
	all, err := p.api.ListMenu(ctx, "")
	if err != nil {
		fail(c, err)
		return
	}
	var categories []string
	for _, g := range groupByCategory(all) {
		categories = append(categories, g.Category)
	}

	selected := c.Query("category")
	items := all
	if selected != "" {
		if items, err = p.api.ListMenu(ctx, selected); err != nil {
			fail(c, err)
			return
		}
	}
	c.HTML(http.StatusOK, "menu.html", view{Title: "Menu", Data: gin.H{
		"Groups":     groupByCategory(items),
		"Categories": categories,
		"Selected":   selected,
	}})
}

func (p *pages) orderForm(c *gin.Context) {
	item, err := p.api.GetMenuItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "order_form.html", view{Title: "Order " + item.Name, Data: orderFormData{
		Item:           item,
		Form:           orderForm{Quantity: "1", OrderType: orders.TypeDelivery},
		IdempotencyKey: uuid.NewString(),
	}})
}

func (p *pages) placeOrder(c *gin.Context) {
	ctx := c.Request.Context()
	item, err := p.api.GetMenuItem(ctx, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	form := orderForm{
		Quantity:            strings.TrimSpace(c.PostForm("quantity")),
		CustomerName:        strings.TrimSpace(c.PostForm("customerName")),
		CustomerPhone:       strings.TrimSpace(c.PostForm("customerPhone")),
		CustomerEmail:       strings.TrimSpace(c.PostForm("customerEmail")),
		OrderType:           c.PostForm("orderType"),
		DeliveryAddress:     strings.TrimSpace(c.PostForm("deliveryAddress")),
		SpecialInstructions: strings.TrimSpace(c.PostForm("specialInstructions")),
	}
	key := c.PostForm("idempotencyKey")
	rerender := func(msg string) {
		c.HTML(http.StatusBadRequest, "order_form.html", view{
			Title: "Order " + item.Name,
			Error: msg,
			Data:  orderFormData{Item: item, Form: form, IdempotencyKey: key},
		})
	}

	if !item.Available {
		rerender(item.Name + " is currently unavailable.")
		return
	}
	qty, err := strconv.Atoi(form.Quantity)
	if err != nil || qty < 1 {
		rerender("Quantity must be a whole number of at least 1.")
		return
	}

	order, err := p.api.CreateOrder(ctx, client.OrderInput{
		CustomerName:        form.CustomerName,
		CustomerEmail:       form.CustomerEmail,
		CustomerPhone:       form.CustomerPhone,
		Items:               []orders.Item{{Name: item.Name, Price: item.Price, Quantity: qty}},
		TotalAmount:         item.Price * float64(qty),
		DeliveryAddress:     form.DeliveryAddress,
		OrderType:           form.OrderType,
		SpecialInstructions: form.SpecialInstructions,
	}, key)
	if errors.Is(err, client.ErrInProgress) {
		c.HTML(http.StatusAccepted, "pending.html", view{
			Title: "Order being placed",
			Data:  pendingData{What: "order", CustomerName: form.CustomerName, CustomerPhone: form.CustomerPhone, TrackOrders: true},
		})
		return
	}
	if err != nil {
		if msg, ok := message(err); ok {
			rerender(msg)
			return
		}
		fail(c, err)
		return
	}
	c.HTML(http.StatusCreated, "order_done.html", view{Title: "Order placed", Data: order})
}

func (p *pages) orders(c *gin.Context) {
	ctx := c.Request.Context()
	phone := strings.TrimSpace(c.Query("phone"))

	var (
		list []orders.Order
		err  error
	)
	if phone != "" {
		list, err = p.api.OrdersByCustomer(ctx, phone)
	} else {
		list, err = p.api.ListOrders(ctx, "")
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "orders.html", view{Title: "Orders", Data: gin.H{"Orders": list, "Phone": phone}})
}

func (p *pages) reservationForm(c *gin.Context) {
	c.HTML(http.StatusOK, "reservation_form.html", view{Title: "Book a table", Data: reservationFormData{
		Form:           reservationForm{NumberOfGuests: "2"},
		IdempotencyKey: uuid.NewString(),
	}})
}

func (p *pages) reserve(c *gin.Context) {
	form := reservationForm{
		CustomerName:    strings.TrimSpace(c.PostForm("customerName")),
		CustomerPhone:   strings.TrimSpace(c.PostForm("customerPhone")),
		CustomerEmail:   strings.TrimSpace(c.PostForm("customerEmail")),
		Date:            c.PostForm("date"),
		Time:            c.PostForm("time"),
		NumberOfGuests:  strings.TrimSpace(c.PostForm("numberOfGuests")),
		SpecialRequests: strings.TrimSpace(c.PostForm("specialRequests")),
	}
	key := c.PostForm("idempotencyKey")
	rerender := func(msg string) {
		c.HTML(http.StatusBadRequest, "reservation_form.html", view{
			Title: "Book a table",
			Error: msg,
			Data:  reservationFormData{Form: form, IdempotencyKey: key},
		})
	}

	guests, err := strconv.Atoi(form.NumberOfGuests)
	if err != nil || guests < 1 {
		rerender("Number of guests must be a whole number of at least 1.")
		return
	}

	res, err := p.api.CreateReservation(c.Request.Context(), client.ReservationInput{
		CustomerName:    form.CustomerName,
		CustomerEmail:   form.CustomerEmail,
		CustomerPhone:   form.CustomerPhone,
		Date:            form.Date,
		Time:            form.Time,
		NumberOfGuests:  guests,
		SpecialRequests: form.SpecialRequests,
	}, key)
	if errors.Is(err, client.ErrInProgress) {
		c.HTML(http.StatusAccepted, "pending.html", view{
			Title: "Reservation being placed",
			Data:  pendingData{What: "reservation", CustomerName: form.CustomerName},
		})
		return
	}
	if err != nil {
		if msg, ok := message(err); ok {
			rerender(msg)
			return
		}
		fail(c, err)
		return
	}
	c.HTML(http.StatusCreated, "reservation_done.html", view{Title: "Reservation received", Data: res})
}

func (p *pages) admin(c *gin.Context) {
	ctx := c.Request.Context()
	data := adminData{}
	var err error

	if data.Stats, err = p.api.Stats(ctx); err != nil {
		fail(c, err)
		return
	}
	if data.Orders, err = p.api.ListOrders(ctx, c.Query("orderStatus")); err != nil {
		fail(c, err)
		return
	}
	if data.Reservations, err = p.api.ListReservations(ctx, c.Query("reservationStatus"), c.Query("date")); err != nil {
		fail(c, err)
		return
	}
	ot, err := p.api.OrderStatuses(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	rt, err := p.api.ReservationStatuses(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	data.OrderStatuses = ot.Statuses
	data.ReservationStatuses = rt.Statuses

	c.HTML(http.StatusOK, "admin.html", view{Title: "Admin dashboard", Error: c.Query("error"), Data: data})
}

// afterUpdate redirects back to the dashboard, carrying a rejected update's message.
func afterUpdate(c *gin.Context, err error) {
	if err == nil {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	var ae *client.APIError
	if errors.As(err, &ae) && ae.Status < http.StatusInternalServerError {
		c.Redirect(http.StatusSeeOther, "/admin?error="+url.QueryEscape(ae.Message))
		return
	}
	fail(c, err)
}

func (p *pages) setOrderStatus(c *gin.Context) {
	_, err := p.api.UpdateOrderStatus(c.Request.Context(), c.Param("id"), c.PostForm("status"))
	afterUpdate(c, err)
}

func (p *pages) setReservationStatus(c *gin.Context) {
	_, err := p.api.UpdateReservationStatus(c.Request.Context(), c.Param("id"), c.PostForm("status"))
	afterUpdate(c, err)
}
