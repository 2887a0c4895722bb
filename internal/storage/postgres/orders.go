package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/polkiloo/qrorder/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, order_number, session_id, table_id, status, total_amount, discount_amount,
                      discount_code, dining_option, note, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.storage.Atomically(ctx, func(ctx context.Context) error {
		const insertOrder = `INSERT INTO orders (id, order_number, session_id, table_id, status, total_amount,
                             discount_amount, discount_code, dining_option, note)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                             RETURNING created_at, updated_at`
		q := r.storage.conn(ctx)
		err := q.QueryRow(ctx, insertOrder,
			order.ID, order.Number, order.SessionID, order.TableID, order.Status, order.TotalAmount,
			order.DiscountAmount, order.DiscountCode, order.DiningOption, order.Note,
		).Scan(&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return translate(err)
		}

		const insertItem = `INSERT INTO order_items (id, order_id, product_id, product_name, unit_price, quantity, modifiers, subtotal)
                            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		for _, item := range order.Items {
			modifiers, err := encodeModifiers(item.Modifiers)
			if err != nil {
				return err
			}
			if _, err := q.Exec(ctx, insertItem,
				item.ID, order.ID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity, modifiers, item.Subtotal,
			); err != nil {
				return translate(err)
			}
		}
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number=$1`, number)
}

func (r *orderRepository) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1 AND status=$3`
	tag, err := r.storage.conn(ctx).Exec(ctx, query, id, model.OrderStatusConfirmed, model.OrderStatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *orderRepository) get(ctx context.Context, query string, arg any) (*model.Order, error) {
	q := r.storage.conn(ctx)

	var o model.Order
	err := q.QueryRow(ctx, query, arg).Scan(
		&o.ID, &o.Number, &o.SessionID, &o.TableID, &o.Status, &o.TotalAmount, &o.DiscountAmount,
		&o.DiscountCode, &o.DiningOption, &o.Note, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}

	const itemsQuery = `SELECT id, order_id, product_id, product_name, unit_price, quantity, modifiers, subtotal
                        FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := q.Query(ctx, itemsQuery, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      model.OrderItem
			modifiers []byte
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.UnitPrice,
			&item.Quantity, &modifiers, &item.Subtotal); err != nil {
			return nil, err
		}
		if item.Modifiers, err = decodeModifiers(modifiers); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func encodeModifiers(modifiers []model.Modifier) ([]byte, error) {
	if len(modifiers) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(modifiers)
	if err != nil {
		return nil, fmt.Errorf("encode modifiers: %w", err)
	}
	return encoded, nil
}

func decodeModifiers(raw []byte) ([]model.Modifier, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var modifiers []model.Modifier
	if err := json.Unmarshal(raw, &modifiers); err != nil {
		return nil, fmt.Errorf("decode modifiers: %w", err)
	}
	return modifiers, nil
}
