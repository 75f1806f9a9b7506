package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/azhark/cottagecatalog/internal/client/models"
)

// Admin panel commands: straight CRUD passthrough over /users and
// /cottages. Every command is gated on the admin role.

func (a *App) Users(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	users, err := a.api.ListUsers(ctx)
	if err != nil {
		a.log.Error(ctx, "error loading users", "error", err)
		printlnFn("Could not load users:", err.Error())
		return nil
	}
	for _, u := range users {
		printlnFn(fmt.Sprintf("#%-4d %-24s %-28s %-14s %s", u.ID, u.FullName(), u.Email, u.Phone, u.Role))
	}
	return nil
}

func (a *App) AddUser(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	u := models.User{Role: models.RoleUser, CreatedAt: time.Now().UTC()}
	var role string
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Email", &u.Email},
		{"Phone", &u.Phone},
		{"First name", &u.FirstName},
		{"Last name", &u.LastName},
		{"Password", &u.Password},
		{"Role user/admin (empty = user)", &role},
	} {
		v, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	if role == string(models.RoleAdmin) {
		u.Role = models.RoleAdmin
	}

	if _, err := a.api.CreateUser(ctx, u); err != nil {
		a.log.Error(ctx, "error creating user", "error", err)
		printlnFn("Could not create user:", err.Error())
		return nil
	}
	printlnFn(a.t("admin.users.created"))
	return nil
}

func (a *App) EditUser(ctx context.Context, arg string) error {
	if !a.requireAdmin() {
		return nil
	}
	id, ok := parseID(arg, "Usage: edituser <id>")
	if !ok {
		return nil
	}

	u, err := a.api.GetUser(ctx, id)
	if err != nil {
		a.log.Error(ctx, "error loading user", "id", id, "error", err)
		printlnFn("Could not load user:", err.Error())
		return nil
	}

	// Empty answers keep the current value.
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{fmt.Sprintf("Email [%s]", u.Email), &u.Email},
		{fmt.Sprintf("Phone [%s]", u.Phone), &u.Phone},
		{fmt.Sprintf("First name [%s]", u.FirstName), &u.FirstName},
		{fmt.Sprintf("Last name [%s]", u.LastName), &u.LastName},
	} {
		v, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = v
		}
	}

	// Through the auth service so editing yourself refreshes the session.
	if _, err := a.auth.UpdateProfile(ctx, u); err != nil {
		a.log.Error(ctx, "error updating user", "id", id, "error", err)
		printlnFn("Could not update user:", err.Error())
		return nil
	}
	printlnFn(a.t("admin.users.updated"))
	return nil
}

func (a *App) DeleteUser(ctx context.Context, arg string) error {
	if !a.requireAdmin() {
		return nil
	}
	id, ok := parseID(arg, "Usage: deluser <id>")
	if !ok {
		return nil
	}

	if err := a.api.DeleteUser(ctx, id); err != nil {
		a.log.Error(ctx, "error deleting user", "id", id, "error", err)
		printlnFn("Could not delete user:", err.Error())
		return nil
	}
	printlnFn(a.t("admin.users.deleted"))
	return nil
}

func (a *App) AddCottage(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	l, err := a.promptCottage(models.Listing{Status: models.StatusAvailable, CreatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	if _, err := a.api.CreateCottage(ctx, l); err != nil {
		a.log.Error(ctx, "error creating cottage", "error", err)
		printlnFn("Could not create listing:", err.Error())
		return nil
	}
	printlnFn(a.t("admin.cottages.created"))
	return nil
}

func (a *App) EditCottage(ctx context.Context, arg string) error {
	if !a.requireAdmin() {
		return nil
	}
	id, ok := parseID(arg, "Usage: editcottage <id>")
	if !ok {
		return nil
	}

	current, err := a.api.GetCottage(ctx, id)
	if err != nil {
		a.log.Error(ctx, "error loading cottage", "id", id, "error", err)
		printlnFn("Could not load listing:", err.Error())
		return nil
	}

	l, err := a.promptCottage(current)
	if err != nil {
		return err
	}

	if _, err := a.api.UpdateCottage(ctx, l); err != nil {
		a.log.Error(ctx, "error updating cottage", "id", id, "error", err)
		printlnFn("Could not update listing:", err.Error())
		return nil
	}
	printlnFn(a.t("admin.cottages.updated"))
	return nil
}

func (a *App) DeleteCottage(ctx context.Context, arg string) error {
	if !a.requireAdmin() {
		return nil
	}
	id, ok := parseID(arg, "Usage: delcottage <id>")
	if !ok {
		return nil
	}

	if err := a.api.DeleteCottage(ctx, id); err != nil {
		a.log.Error(ctx, "error deleting cottage", "id", id, "error", err)
		printlnFn("Could not delete listing:", err.Error())
		return nil
	}
	printlnFn(a.t("admin.cottages.deleted"))
	return nil
}

// promptCottage fills a listing from interactive input, keeping the
// current values on empty answers.
func (a *App) promptCottage(l models.Listing) (models.Listing, error) {
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{fmt.Sprintf("Title [%s]", l.Title), &l.Title},
		{fmt.Sprintf("Location [%s]", l.Location), &l.Location},
		{fmt.Sprintf("Category [%s]", l.Category), &l.Category},
		{fmt.Sprintf("Description [%s]", l.Description), &l.Description},
	} {
		v, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return l, err
		}
		if v != "" {
			*f.dst = v
		}
	}

	for _, f := range []struct {
		prompt string
		set    func(int64)
	}{
		{fmt.Sprintf("Price [%d]", l.Price), func(v int64) { l.Price = v }},
		{fmt.Sprintf("Area [%d]", l.Area), func(v int64) { l.Area = int(v) }},
		{fmt.Sprintf("Bedrooms [%d]", l.Bedrooms), func(v int64) { l.Bedrooms = int(v) }},
		{fmt.Sprintf("Bathrooms [%d]", l.Bathrooms), func(v int64) { l.Bathrooms = int(v) }},
		{fmt.Sprintf("Floors [%d]", l.Floors), func(v int64) { l.Floors = int(v) }},
	} {
		v, err := GetOptionalInt(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return l, err
		}
		if v != 0 {
			f.set(v)
		}
	}

	status, err := getSimpleText(a.reader, fmt.Sprintf("Status available/reserved/sold [%s]", l.Status), os.Stdout)
	if err != nil {
		return l, err
	}
	if status != "" {
		l.Status = models.ListingStatus(status)
	}

	images, err := getSimpleText(a.reader, "Images, comma-separated (empty keeps current)", os.Stdout)
	if err != nil {
		return l, err
	}
	if images != "" {
		l.Images = nil
		for _, img := range strings.Split(images, ",") {
			if img = strings.TrimSpace(img); img != "" {
				l.Images = append(l.Images, img)
			}
		}
	}
	return l, nil
}

func parseID(arg, usage string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		printlnFn(usage)
		return 0, false
	}
	return id, true
}
