package users

import (
	"context"
	"errors"
	"net/url"
	"text_trans_api/config"
	"text_trans_api/models/tables"
	"text_trans_api/pkg/supabase"
	"time"
)

var ErrNotFound = errors.New("user not found")

func GetUserInfo(ctx context.Context, userid string) (tables.User, error) {
	queryParams := url.Values{}
	queryParams.Add("select", "*")
	queryParams.Add("id", "eq."+userid)
	queryParams.Add("limit", "1")

	var userList []tables.User
	if err := supabase.SelectInto(ctx, "users", queryParams, &userList); err != nil {
		return tables.User{}, err
	}

	if len(userList) == 0 {
		return tables.User{}, ErrNotFound
	}

	return userList[0], nil
}

// EnsureUser returns the profile row for userid, creating it on the
// first authenticated request with the free plan and sane defaults.
func EnsureUser(ctx context.Context, userid string, email string) (tables.User, error) {
	user, err := GetUserInfo(ctx, userid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return tables.User{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user = tables.User{
		ID:                 userid,
		Email:              email,
		PreferredLanguage:  "en",
		Plan:               config.PlanFree,
		EmailNotifications: true,
		CreatedTime:        now,
		UpdateTime:         now,
	}

	if err := supabase.Insert(ctx, "users", user); err != nil {
		return tables.User{}, err
	}

	return user, nil
}

func UpdateUser(ctx context.Context, userid string, fields map[string]interface{}) error {
	fields["update_time"] = time.Now().UTC().Format(time.RFC3339)

	queryParams := url.Values{}
	queryParams.Add("id", "eq."+userid)
	return supabase.Update(ctx, "users", queryParams, fields)
}

// GetSignupsByIP lists prior signups from an address. The signup
// handler uses it for the one-signup-per-IP rule; the check is a
// read-then-write with no transaction, as the product defines it.
func GetSignupsByIP(ctx context.Context, ip string) ([]tables.UserSignup, error) {
	queryParams := url.Values{}
	queryParams.Add("select", "*")
	queryParams.Add("ip", "eq."+ip)

	var signups []tables.UserSignup
	if err := supabase.SelectInto(ctx, "user_signups", queryParams, &signups); err != nil {
		return nil, err
	}
	return signups, nil
}

func AddSignup(ctx context.Context, email string, ip string) error {
	return supabase.Insert(ctx, "user_signups", map[string]interface{}{
		"email":       email,
		"ip":          ip,
		"create_time": time.Now().UTC().Format(time.RFC3339),
	})
}
