package client

import (
	"context"
	"testing"

	"queuedesk/database/repository/memory"
	"queuedesk/models"
)

func TestCreateUserMergesReturningClient(t *testing.T) {
	store := memory.NewStore()
	clients := &DefaultClientService{Repo: store.Clients()}
	users := &DefaultUserService{Repo: store.Users(), Clients: clients}
	ctx := context.Background()

	first, err := users.CreateUser(ctx, models.User{CommerceID: "c1", Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	second, err := users.CreateUser(ctx, models.User{CommerceID: "c1", Phone: "555", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if first.ClientID == "" || first.ClientID != second.ClientID {
		t.Fatalf("expected both visits on one client, got %q and %q", first.ClientID, second.ClientID)
	}

	c, err := clients.GetClientByID(ctx, first.ClientID)
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if c.Counter != 1 || !c.FrequentCustomer {
		t.Fatalf("expected returning client counters, got %+v", c)
	}
	if c.Name != "Ana" || c.Phone != "555" {
		t.Fatalf("expected merged contact data, got %+v", c)
	}
	if !second.FrequentCustomer {
		t.Fatalf("expected frequent flag on second visit")
	}
}

func TestGetClientByIDMissing(t *testing.T) {
	clients := &DefaultClientService{Repo: memory.NewStore().Clients()}
	if _, err := clients.GetClientByID(context.Background(), "nope"); err == nil {
		t.Fatalf("expected not found")
	}
}
