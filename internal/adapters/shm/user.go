package shm

import (
	"context"
	"fmt"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
)

type wireUser struct {
	UserID    int64    `json:"user_id"`
	Login     string   `json:"login"`
	FullName  string   `json:"full_name"`
	Balance   float64  `json:"balance"`
	Phone     string   `json:"phone"`
	Discount  float64  `json:"discount"`
	Created   wireTime `json:"created"`
	LastLogin wireTime `json:"last_login"`
}

func (u wireUser) toDomain() domain.User {
	return domain.User{
		ID:        u.UserID,
		Login:     u.Login,
		FullName:  u.FullName,
		Balance:   u.Balance,
		Phone:     u.Phone,
		Discount:  u.Discount,
		Created:   u.Created.Time,
		LastLogin: u.LastLogin.Time,
	}
}

func (c *Client) Profile(ctx context.Context) (domain.User, error) {
	var user wireUser
	if err := c.get(ctx, "/user", &user); err != nil {
		return domain.User{}, fmt.Errorf("fetch profile: %w", err)
	}
	return user.toDomain(), nil
}

func (c *Client) Register(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	body := map[string]string{
		"login":    creds.Login,
		"password": creds.Password,
	}

	var user wireUser
	if err := c.put(ctx, "/user", body, &user); err != nil {
		return domain.User{}, fmt.Errorf("register user: %w", err)
	}
	return user.toDomain(), nil
}

func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (domain.User, error) {
	var user wireUser
	if err := c.post(ctx, "/user", fields, &user); err != nil {
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}
	return user.toDomain(), nil
}
