package controllers

import (
	"net/http"
	"sort"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/config"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/models"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const topRankingSize = 10

// DashboardController handles the reporting endpoints
type DashboardController struct{}

type ProductRanking struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Revenue   float64   `json:"revenue"`
	Quantity  int       `json:"quantity"`
}

type CustomerRanking struct {
	CustomerID uuid.UUID `json:"customerId"`
	Name       string    `json:"name"`
	Spent      float64   `json:"spent"`
	OrderCount int       `json:"orderCount"`
}

type ManagerSales struct {
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Revenue    float64 `json:"revenue"`
	OrderCount int     `json:"orderCount"`
}

// DashboardStats is the admin-facing report for a period
type DashboardStats struct {
	PeriodDays     int               `json:"periodDays"`
	Revenue        float64           `json:"revenue"`
	GrossProfit    float64           `json:"grossProfit"`
	TotalExpenses  float64           `json:"totalExpenses"`
	NetProfit      float64           `json:"netProfit"`
	OrderCount     int               `json:"orderCount"`
	OrdersByStatus map[string]int    `json:"ordersByStatus"`
	TopProducts    []ProductRanking  `json:"topProducts"`
	TopCustomers   []CustomerRanking `json:"topCustomers"`
	SalesByManager []ManagerSales    `json:"salesByManager"`
}

// ManagerDashboardStats is the per-manager report, scoped to the caller
type ManagerDashboardStats struct {
	PeriodDays     int               `json:"periodDays"`
	Revenue        float64           `json:"revenue"`
	GrossProfit    float64           `json:"grossProfit"`
	OrderCount     int               `json:"orderCount"`
	OrdersByStatus map[string]int    `json:"ordersByStatus"`
	TopProducts    []ProductRanking  `json:"topProducts"`
	TopCustomers   []CustomerRanking `json:"topCustomers"`
}

var decimalHundred = decimal.NewFromInt(100)

// itemProfit computes (price * (1 - discount/100) - salonPriceUsd * exchangeRate) * quantity,
// using the cost snapshot captured at order time.
func itemProfit(item models.OrderItem) decimal.Decimal {
	price := decimal.NewFromFloat(item.Price)
	discount := decimal.NewFromFloat(item.Discount)
	cost := decimal.NewFromFloat(item.SalonPriceUsd).Mul(decimal.NewFromFloat(item.ExchangeRate))

	net := price.Mul(decimal.NewFromInt(1).Sub(discount.Div(decimalHundred)))
	return net.Sub(cost).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// itemRevenue computes price * (1 - discount/100) * quantity.
func itemRevenue(item models.OrderItem) decimal.Decimal {
	price := decimal.NewFromFloat(item.Price)
	discount := decimal.NewFromFloat(item.Discount)
	net := price.Mul(decimal.NewFromInt(1).Sub(discount.Div(decimalHundred)))
	return net.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// fetchOrders loads all orders in the window, items included, optionally
// scoped to one manager. Reports reduce over these rows in process.
func (dc *DashboardController) fetchOrders(days int, managerEmail string) ([]models.Order, error) {
	start, end := utils.PeriodWindow(days)

	query := config.DB.Preload("Items").Where("date BETWEEN ? AND ?", start, end)
	if managerEmail != "" {
		query = query.Where("managed_by_user_email = ?", managerEmail)
	}

	var orders []models.Order
	err := query.Find(&orders).Error
	return orders, err
}

func (dc *DashboardController) sumExpenses(days int) (decimal.Decimal, error) {
	start, end := utils.PeriodWindow(days)

	var expenses []models.Expense
	if err := config.DB.Where("date BETWEEN ? AND ?", start, end).Find(&expenses).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	return total, nil
}

func (dc *DashboardController) revenueAndProfit(orders []models.Order) (revenue, gross decimal.Decimal) {
	revenue, gross = decimal.Zero, decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(o.TotalAmount))
		for _, item := range o.Items {
			gross = gross.Add(itemProfit(item))
		}
	}
	return revenue, gross
}

func (dc *DashboardController) ordersByStatus(orders []models.Order) map[string]int {
	byStatus := make(map[string]int, len(models.OrderStatuses))
	for _, o := range orders {
		byStatus[o.Status]++
	}
	return byStatus
}

func (dc *DashboardController) topProducts(orders []models.Order) []ProductRanking {
	byProduct := make(map[uuid.UUID]*ProductRanking)
	for _, o := range orders {
		for _, item := range o.Items {
			entry, ok := byProduct[item.ProductID]
			if !ok {
				entry = &ProductRanking{ProductID: item.ProductID, Name: item.ProductName}
				byProduct[item.ProductID] = entry
			}
			entry.Revenue += itemRevenue(item).InexactFloat64()
			entry.Quantity += item.Quantity
		}
	}

	rankings := make([]ProductRanking, 0, len(byProduct))
	for _, entry := range byProduct {
		rankings = append(rankings, *entry)
	}
	sort.Slice(rankings, func(i, j int) bool { return rankings[i].Revenue > rankings[j].Revenue })
	if len(rankings) > topRankingSize {
		rankings = rankings[:topRankingSize]
	}
	return rankings
}

func (dc *DashboardController) topCustomers(orders []models.Order) []CustomerRanking {
	byCustomer := make(map[uuid.UUID]*CustomerRanking)
	for _, o := range orders {
		entry, ok := byCustomer[o.CustomerID]
		if !ok {
			entry = &CustomerRanking{CustomerID: o.CustomerID, Name: o.CustomerName}
			byCustomer[o.CustomerID] = entry
		}
		entry.Spent += o.TotalAmount
		entry.OrderCount++
	}

	rankings := make([]CustomerRanking, 0, len(byCustomer))
	for _, entry := range byCustomer {
		rankings = append(rankings, *entry)
	}
	sort.Slice(rankings, func(i, j int) bool { return rankings[i].Spent > rankings[j].Spent })
	if len(rankings) > topRankingSize {
		rankings = rankings[:topRankingSize]
	}
	return rankings
}

// salesByManager groups order revenue by the attributed manager, resolving
// display names through the combined admins + managed_users email map.
func (dc *DashboardController) salesByManager(orders []models.Order) ([]ManagerSales, error) {
	names := make(map[string]string)

	var admins []models.Admin
	if err := config.DB.Find(&admins).Error; err != nil {
		return nil, err
	}
	for _, a := range admins {
		names[a.Email] = a.Name
	}

	var managers []models.ManagedUser
	if err := config.DB.Find(&managers).Error; err != nil {
		return nil, err
	}
	for _, m := range managers {
		names[m.Email] = m.Name
	}

	byManager := make(map[string]*ManagerSales)
	for _, o := range orders {
		email := o.ManagedByUserEmail
		if email == "" {
			continue
		}
		entry, ok := byManager[email]
		if !ok {
			entry = &ManagerSales{Email: email, Name: names[email]}
			byManager[email] = entry
		}
		entry.Revenue += o.TotalAmount
		entry.OrderCount++
	}

	sales := make([]ManagerSales, 0, len(byManager))
	for _, entry := range byManager {
		sales = append(sales, *entry)
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].Revenue > sales[j].Revenue })
	return sales, nil
}

// GetDashboardStats returns the admin profit-and-loss report for a period
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	days := utils.ParsePeriodDays(c.Query("period"))

	orders, err := dc.fetchOrders(days, "")
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	totalExpenses, err := dc.sumExpenses(days)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	sales, err := dc.salesByManager(orders)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve manager names")
		return
	}

	revenue, gross := dc.revenueAndProfit(orders)
	net := gross.Sub(totalExpenses)

	c.JSON(http.StatusOK, DashboardStats{
		PeriodDays:     days,
		Revenue:        revenue.Round(2).InexactFloat64(),
		GrossProfit:    gross.Round(2).InexactFloat64(),
		TotalExpenses:  totalExpenses.Round(2).InexactFloat64(),
		NetProfit:      net.Round(2).InexactFloat64(),
		OrderCount:     len(orders),
		OrdersByStatus: dc.ordersByStatus(orders),
		TopProducts:    dc.topProducts(orders),
		TopCustomers:   dc.topCustomers(orders),
		SalesByManager: sales,
	})
}

// GetManagerDashboard returns the report scoped to the caller's own orders
func (dc *DashboardController) GetManagerDashboard(c *gin.Context) {
	days := utils.ParsePeriodDays(c.Query("period"))

	orders, err := dc.fetchOrders(days, c.GetString(utils.CtxUserEmail))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	revenue, gross := dc.revenueAndProfit(orders)

	c.JSON(http.StatusOK, ManagerDashboardStats{
		PeriodDays:     days,
		Revenue:        revenue.Round(2).InexactFloat64(),
		GrossProfit:    gross.Round(2).InexactFloat64(),
		OrderCount:     len(orders),
		OrdersByStatus: dc.ordersByStatus(orders),
		TopProducts:    dc.topProducts(orders),
		TopCustomers:   dc.topCustomers(orders),
	})
}
