package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"ecommerce-api/models"
)

var (
	// ErrInvalidRequest indicates the cart payload is empty or carries no
	// resolvable product id.
	ErrInvalidRequest = errors.New("orders: invalid request")
	// ErrNoValidItems indicates every cart line referenced an inactive or
	// unknown product.
	ErrNoValidItems = errors.New("orders: no valid items")
	// ErrOwnerNotFound indicates the authenticated user id has no stored profile.
	ErrOwnerNotFound = errors.New("orders: owner not found")
	// ErrOrderNotFound indicates the order does not exist or is not visible
	// to the caller.
	ErrOrderNotFound = errors.New("orders: order not found")
)

const defaultPaymentMethod = "razorpay"

// EventPublisher receives best-effort order lifecycle events after a write
// commits. A nil publisher disables eventing entirely.
type EventPublisher interface {
	PublishOrderEvent(event models.OrderEvent) error
}

type OrderService struct {
	db     *sql.DB
	logger *zap.Logger
	events EventPublisher
}

func NewOrderService(db *sql.DB, logger *zap.Logger, events EventPublisher) *OrderService {
	return &OrderService{db: db, logger: logger, events: events}
}

// Create validates the cart, recomputes line totals from current catalog
// prices, snapshots the shipping address and persists the order with its
// items in one transaction. Client-sent amounts are never used for money.
func (s *OrderService) Create(ctx context.Context, userID int64, req *models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrInvalidRequest
	}

	productIDs := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		if item.ProductID > 0 {
			productIDs = append(productIDs, item.ProductID)
		}
	}
	if len(productIDs) == 0 {
		return nil, ErrInvalidRequest
	}

	prices, err := s.activePrices(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	// Lines referencing inactive or unknown products are dropped silently;
	// quantities below 1 are floored, never rejected.
	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		price, ok := prices[item.ProductID]
		if !ok {
			continue
		}
		qty := int(item.Quantity)
		if qty < 1 {
			qty = 1
		}
		total += price * float64(qty)
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  qty,
			Price:     price,
		})
	}
	if len(items) == 0 {
		return nil, ErrNoValidItems
	}

	user, err := s.userByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := models.OrderStatusPending
	if strings.TrimSpace(req.PaymentID) != "" {
		// Trusted as-is: no signature verification against the gateway.
		status = models.OrderStatusPaid
	}

	method := req.PaymentMethod
	if method == "" {
		method = defaultPaymentMethod
	}

	now := time.Now()
	order := &models.Order{
		UserID:            userID,
		TotalAmount:       total,
		Status:            status,
		PaymentID:         optStr(req.PaymentID),
		RazorpayOrderID:   optStr(req.RazorpayOrderID),
		RazorpaySignature: optStr(req.RazorpaySignature),
		PaymentMethod:     method,
		AddressSnapshot:   BuildAddressSnapshot(user, req),
		Items:             items,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.insertOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publish(order, "created")
	return order, nil
}

func (s *OrderService) insertOrder(ctx context.Context, order *models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (user_id, total_amount, status, payment_id, razorpay_order_id, razorpay_signature, payment_method,
			address_line1, address_line2, city, state, postal_code, country, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, order.UserID, order.TotalAmount, order.Status, order.PaymentID, order.RazorpayOrderID, order.RazorpaySignature,
		order.PaymentMethod, order.AddressLine1, order.AddressLine2, order.City, order.State, order.PostalCode,
		order.Country, order.Phone, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return err
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = orderID

	for i := range order.Items {
		item := &order.Items[i]
		itemResult, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)
		`, orderID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return err
		}
		item.OrderID = orderID
		if itemID, err := itemResult.LastInsertId(); err == nil {
			item.ID = itemID
		}
	}

	return tx.Commit()
}

// activePrices resolves the referenced products in one batch, filtered to
// active ones. Missing ids simply do not appear in the result.
func (s *OrderService) activePrices(ctx context.Context, productIDs []int64) (map[int64]float64, error) {
	query := `SELECT id, price FROM products WHERE active = TRUE AND id IN (` +
		placeholders(len(productIDs)) + `)`

	args := make([]any, len(productIDs))
	for i, id := range productIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	prices := make(map[int64]float64, len(productIDs))
	for rows.Next() {
		var id int64
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}
	return prices, rows.Err()
}

func (s *OrderService) userByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	var line1, line2, city, state, postal, country, phone sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, role, address_line1, address_line2, city, state, postal_code, country, phone, created_at
		FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &line1, &line2, &city, &state, &postal, &country, &phone, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOwnerNotFound
	}
	if err != nil {
		return nil, err
	}
	u.AddressLine1 = nsPtr(line1)
	u.AddressLine2 = nsPtr(line2)
	u.City = nsPtr(city)
	u.State = nsPtr(state)
	u.PostalCode = nsPtr(postal)
	u.Country = nsPtr(country)
	u.Phone = nsPtr(phone)
	return &u, nil
}

// ListByUser returns the caller's orders, newest first, with items and the
// current product row nested on each line.
func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, orderSelect+` WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if err := s.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// GetForUser returns a single order only when it belongs to the caller.
func (s *OrderService) GetForUser(ctx context.Context, orderID, userID int64) (*models.Order, error) {
	row := s.db.QueryRowContext(ctx, orderSelect+` WHERE id = ? AND user_id = ?`, orderID, userID)
	order, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// AdminList returns every order, newest first, with the owning user attached.
func (s *OrderService) AdminList(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, orderSelect+` ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if err := s.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
		user, err := s.userByID(ctx, orders[i].UserID)
		if err == nil {
			orders[i].User = user
		} else if !errors.Is(err, ErrOwnerNotFound) {
			return nil, err
		}
	}
	return orders, nil
}

func (s *OrderService) AdminGet(ctx context.Context, orderID int64) (*models.Order, error) {
	row := s.db.QueryRowContext(ctx, orderSelect+` WHERE id = ?`, orderID)
	order, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadItems(ctx, order); err != nil {
		return nil, err
	}
	if user, err := s.userByID(ctx, order.UserID); err == nil {
		order.User = user
	} else if !errors.Is(err, ErrOwnerNotFound) {
		return nil, err
	}
	return order, nil
}

// UpdateStatus overwrites the order's status. Any string is accepted; there
// is no transition table, so a terminal status can move back to an earlier one.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status string) (*models.Order, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ?
	`, status, orderID)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderNotFound
	}

	order, err := s.AdminGet(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.publish(order, "status_updated")
	return order, nil
}

func (s *OrderService) publish(order *models.Order, eventType string) {
	if s.events == nil {
		return
	}
	event := models.OrderEvent{
		OrderID:  order.ID,
		UserID:   order.UserID,
		Type:     eventType,
		Status:   order.Status,
		Total:    order.TotalAmount,
		Occurred: time.Now(),
	}
	if err := s.events.PublishOrderEvent(event); err != nil {
		s.logger.Warn("failed to publish order event",
			zap.Int64("order_id", order.ID),
			zap.String("type", eventType),
			zap.Error(err))
	}
}

const orderSelect = `
	SELECT id, user_id, total_amount, status, payment_id, razorpay_order_id, razorpay_signature, payment_method,
		address_line1, address_line2, city, state, postal_code, country, phone, created_at, updated_at
	FROM orders`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderInto(sc rowScanner, o *models.Order) error {
	var paymentID, rzpOrderID, rzpSignature sql.NullString
	var line1, line2, city, state, postal, country, phone sql.NullString

	err := sc.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &paymentID, &rzpOrderID, &rzpSignature,
		&o.PaymentMethod, &line1, &line2, &city, &state, &postal, &country, &phone, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}

	o.PaymentID = nsPtr(paymentID)
	o.RazorpayOrderID = nsPtr(rzpOrderID)
	o.RazorpaySignature = nsPtr(rzpSignature)
	o.AddressLine1 = nsPtr(line1)
	o.AddressLine2 = nsPtr(line2)
	o.City = nsPtr(city)
	o.State = nsPtr(state)
	o.PostalCode = nsPtr(postal)
	o.Country = nsPtr(country)
	o.Phone = nsPtr(phone)
	return nil
}

func scanOrder(row *sql.Row) (*models.Order, error) {
	var o models.Order
	if err := scanOrderInto(row, &o); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := scanOrderInto(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *OrderService) loadItems(ctx context.Context, order *models.Order) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
			p.id, p.name, p.slug, p.price, p.stock, p.active, p.created_at
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY oi.id ASC
	`, order.ID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	order.Items = order.Items[:0]
	for rows.Next() {
		var item models.OrderItem
		var pID sql.NullInt64
		var pName, pSlug sql.NullString
		var pPrice sql.NullFloat64
		var pStock sql.NullInt64
		var pActive sql.NullBool
		var pCreated sql.NullTime

		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price,
			&pID, &pName, &pSlug, &pPrice, &pStock, &pActive, &pCreated); err != nil {
			return err
		}
		if pID.Valid {
			item.Product = &models.Product{
				ID:        pID.Int64,
				Name:      pName.String,
				Slug:      pSlug.String,
				Price:     pPrice.Float64,
				Stock:     int(pStock.Int64),
				Active:    pActive.Bool,
				CreatedAt: pCreated.Time,
			}
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func optStr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func nsPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
