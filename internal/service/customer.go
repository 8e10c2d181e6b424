package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/snnyvrz/library-api/internal/cache"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
)

type CustomerInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Address     string
	Password    string
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type CustomerService struct {
	customers repository.CustomerRepository
	hasher    PasswordHasher
	cache     cache.Cache
}

func NewCustomerService(customers repository.CustomerRepository, hasher PasswordHasher, c cache.Cache) *CustomerService {
	return &CustomerService{customers: customers, hasher: hasher, cache: orNoop(c)}
}

func (s *CustomerService) List(ctx context.Context, pageNumber, pageSize int, field string) (Page[model.Customer], error) {
	return listPage[model.Customer](ctx, s.cache, customersCollection, s.customers, pageNumber, pageSize, field, "No Customers Found!")
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*model.Customer, error) {
	return getByID(ctx, s.cache, customersCollection, s.customers.FindByID, id, customerNotFound(id))
}

func (s *CustomerService) Add(ctx context.Context, in CustomerInput) (*model.Customer, error) {
	exists, err := s.customers.ExistsByEmailOrPhoneNumber(ctx, in.Email, in.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("check customer exists: %w", err)
	}
	if exists {
		return nil, Conflict("This Customer Already Exists!")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	customer := model.Customer{
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		Password:    hash,
	}
	if err := s.customers.Create(ctx, &customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflict("This Customer Already Exists!")
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}

	invalidate(s.cache, customersCollection)
	slog.InfoContext(ctx, "customer created", "customer_id", customer.ID)

	return &customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, in CustomerInput) (*model.Customer, error) {
	customer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	customer.Name = in.Name
	customer.Address = in.Address
	customer.Email = in.Email
	customer.PhoneNumber = in.PhoneNumber
	customer.Password = hash

	if err := s.customers.Update(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflict("This Customer Already Exists!")
		}
		return nil, fmt.Errorf("update customer %d: %w", id, err)
	}

	invalidate(s.cache, customersCollection, recordsCollection)
	slog.InfoContext(ctx, "customer updated", "customer_id", customer.ID)

	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uint) (string, error) {
	if _, err := s.find(ctx, id); err != nil {
		return "", err
	}

	if err := s.customers.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return "", NotFound(customerNotFound(id))
		case errors.Is(err, repository.ErrReferenced):
			return "", Conflictf("Customer With ID: %d Is Still Referenced By Borrowing Records!", id)
		}
		return "", fmt.Errorf("delete customer %d: %w", id, err)
	}

	invalidate(s.cache, customersCollection, recordsCollection)
	slog.InfoContext(ctx, "customer deleted", "customer_id", id)

	return fmt.Sprintf("Customer With ID: %d Deleted Successfully!", id), nil
}

func (s *CustomerService) find(ctx context.Context, id uint) (*model.Customer, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound(customerNotFound(id))
		}
		return nil, fmt.Errorf("find customer %d: %w", id, err)
	}
	return customer, nil
}

func customerNotFound(id uint) string {
	return fmt.Sprintf("No Customer With The ID: %d Found!", id)
}
