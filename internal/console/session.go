package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"supply-chain-cli/internal/entity"
	"supply-chain-cli/internal/prompt"
)

const (
	ChoicePrompt         = "Enter your choice (1-8): "
	InvalidChoiceMessage = "Invalid choice. Please choose a number between 1 and 8."
	TerminatingMessage   = "Terminating the program."
	OrderCreatedMessage  = "Order created successfully."
	StockUpdatedMessage  = "Product units in stock updated successfully."
)

// Operations is everything the menu can invoke against the database.
type Operations interface {
	RunReport(ctx context.Context, report entity.Report) (*entity.ResultSet, error)
	CreateOrder(ctx context.Context, order entity.NewOrder) error
	UpdateUnitsInStock(ctx context.Context, update entity.StockUpdate) error
	Close() error
}

// Session is one interactive menu session over a single open connection.
type Session struct {
	ops    Operations
	prompt *prompt.Prompter
	out    io.Writer
}

func NewSession(ops Operations, prompter *prompt.Prompter) *Session {
	return &Session{
		ops:    ops,
		prompt: prompter,
		out:    prompter.Out(),
	}
}

// Run shows the menu until the user quits or input ends, then closes the
// connection. Failed operations are reported and the menu is shown again.
func (s *Session) Run(ctx context.Context) error {
	var readErr error
	for ctx.Err() == nil {
		s.printMenu()

		choice, err := s.prompt.ReadLine(ChoicePrompt)
		if errors.Is(err, prompt.ErrLineTooLong) {
			fmt.Fprint(s.out, "\n\n")
			fmt.Fprintln(s.out, InvalidChoiceMessage)
			continue
		}
		if err != nil {
			readErr = err
			break
		}
		fmt.Fprint(s.out, "\n\n")

		quit, err := s.dispatch(ctx, strings.TrimSpace(choice))
		if err != nil {
			readErr = err
			break
		}
		if quit {
			break
		}
	}

	if errors.Is(readErr, prompt.ErrInputClosed) {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, TerminatingMessage)
		readErr = nil
	}

	return errors.Join(readErr, s.ops.Close())
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out, "\nMenu:")
	for _, report := range entity.Reports {
		fmt.Fprintf(s.out, "%d. %s\n", int(report), report.Title())
	}
	fmt.Fprintln(s.out, "6. Call the stored procedure to create a new Order along with OrderDetails.")
	fmt.Fprintln(s.out, "7. Call the stored procedure to update the amount of units in stock for a specific product.")
	fmt.Fprintln(s.out, "8. Quit")
}

// dispatch runs one menu choice. It reports quit for choice 8 and returns
// an error only when reading further input failed.
func (s *Session) dispatch(ctx context.Context, choice string) (bool, error) {
	switch choice {
	case "1", "2", "3", "4", "5":
		n, _ := strconv.Atoi(choice)
		s.runReport(ctx, entity.Report(n))
	case "6":
		return false, s.createOrder(ctx)
	case "7":
		return false, s.updateUnitsInStock(ctx)
	case "8":
		fmt.Fprintln(s.out, TerminatingMessage)
		return true, nil
	default:
		fmt.Fprintln(s.out, InvalidChoiceMessage)
	}
	return false, nil
}

func (s *Session) runReport(ctx context.Context, report entity.Report) {
	result, err := s.ops.RunReport(ctx, report)
	if err != nil {
		fmt.Fprintf(s.out, "Error executing query: %v\n", err)
		return
	}
	PrintResult(s.out, result)
}

func (s *Session) createOrder(ctx context.Context) error {
	order, err := s.readNewOrder()
	if err != nil {
		return err
	}

	if err := s.ops.CreateOrder(ctx, order); err != nil {
		fmt.Fprintf(s.out, "Error calling stored procedure: %v\n", err)
		return nil
	}
	fmt.Fprintln(s.out, OrderCreatedMessage)
	return nil
}

func (s *Session) updateUnitsInStock(ctx context.Context) error {
	var (
		update entity.StockUpdate
		err    error
	)
	if update.ProductID, err = s.prompt.AskInt("Enter Product ID (integer): "); err != nil {
		return err
	}
	if update.UnitsInStock, err = s.prompt.AskInt("Enter Units in Stock (integer): "); err != nil {
		return err
	}

	if err := s.ops.UpdateUnitsInStock(ctx, update); err != nil {
		fmt.Fprintf(s.out, "Error updating product units in stock: %v\n", err)
		return nil
	}
	fmt.Fprintln(s.out, StockUpdatedMessage)
	return nil
}

// readNewOrder collects the ten new_order fields in procedure order.
func (s *Session) readNewOrder() (entity.NewOrder, error) {
	var (
		order entity.NewOrder
		err   error
	)
	p := s.prompt

	if order.CustomerID, err = p.AskInt("Enter Customer ID (integer): "); err != nil {
		return order, err
	}
	if order.OrderDate, err = p.AskDate("Enter Order Date (YYYY-MM-DD): "); err != nil {
		return order, err
	}
	if order.ShipDate, err = p.AskDate("Enter Ship Date (YYYY-MM-DD): "); err != nil {
		return order, err
	}
	if order.ShipAddress, err = p.AskText("Enter Ship Address: "); err != nil {
		return order, err
	}
	if order.ShipCity, err = p.AskText("Enter Ship City: "); err != nil {
		return order, err
	}
	if order.ShipPostalCode, err = p.AskText("Enter Ship Postal Code: "); err != nil {
		return order, err
	}
	if order.ShipCountry, err = p.AskText("Enter Ship Country: "); err != nil {
		return order, err
	}
	if order.ProductID, err = p.AskInt("Enter Product ID (integer): "); err != nil {
		return order, err
	}
	if order.Quantity, err = p.AskInt("Enter Quantity (integer): "); err != nil {
		return order, err
	}
	if order.UnitPrice, err = p.AskDecimal("Enter Unit Price (decimal): "); err != nil {
		return order, err
	}
	return order, nil
}
