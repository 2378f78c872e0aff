package app

import (
	"fmt"
	"time"

	"github.com/guonaihong/gout"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Maintenance jobs run out of band on the cron scheduler, call the live
// GraphQL endpoint like any other client, and append one line per event
// to plain text log files. Each job catches everything: a failing job
// must never take the scheduler down.
//
// The heartbeat/low-stock logs use DD/MM/YYYY-HH:MM:SS timestamps while
// the reminder log uses YYYY-MM-DD HH:MM:SS; the inconsistency is kept
// for compatibility with existing log consumers.
const (
	jobTimeLayout      = "02/01/2006-15:04:05"
	reminderTimeLayout = "2006-01-02 15:04:05"
)

var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	specs := []struct {
		category string
		name     string
		fallback string
		task     func()
	}{
		{"jobs", "HeartbeatCron", "*/5 * * * *", a.SchedHeartbeatTask},
		{"jobs", "LowStockCron", "0 */12 * * *", a.SchedLowStockTask},
		{"jobs", "ReminderCron", "@daily", a.SchedOrderRemindersTask},
	}
	for _, s := range specs {
		spec := a.configManager.GetString(s.category, s.name)
		if spec == "" {
			spec = s.fallback
		}
		if _, err := a.sched.AddFunc(spec, s.task); err != nil {
			zap.S().Errorf("init job %s error %s", s.name, err.Error())
		}
	}

	a.sched.Start()
}

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

func (a *Application) postGraphQL(query string, variables map[string]interface{}, out interface{}) error {
	return gout.POST(a.appConfig.Jobs.Endpoint).
		SetJSON(gqlRequest{Query: query, Variables: variables}).
		BindJSON(out).
		SetTimeout(30 * time.Second).
		Do()
}

// SchedHeartbeatTask appends a liveness line and smoke-tests the API with
// the hello query.
func (a *Application) SchedHeartbeatTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	timestamp := time.Now().Format(jobTimeLayout)
	if err := appendLogLine(a.appConfig.Jobs.HeartbeatLog, timestamp+" CRM is alive"); err != nil {
		_ = appendLogLine(a.appConfig.Jobs.ErrorLog,
			fmt.Sprintf("%s Error writing to log file: %s", timestamp, err.Error()))
	}

	var resp struct {
		Data struct {
			Hello string `json:"hello"`
		} `json:"data"`
		Errors []gqlError `json:"errors"`
	}
	err := a.postGraphQL("query { hello }", nil, &resp)
	if err == nil && len(resp.Errors) > 0 {
		err = fmt.Errorf("%s", resp.Errors[0].Message)
	}
	if err != nil {
		_ = appendLogLine(a.appConfig.Jobs.ErrorLog,
			fmt.Sprintf("%s GraphQL endpoint check failed: %s", timestamp, err.Error()))
		return
	}
	zap.S().Debugf("heartbeat hello response: %s", resp.Data.Hello)
}

const lowStockMutation = `
mutation {
    updateLowStockProducts {
        success
        message
        errors
        products {
            id
            name
            stock
        }
    }
}`

// SchedLowStockTask invokes the restock mutation over the network and
// appends the outcome, one line per restocked product.
func (a *Application) SchedLowStockTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	timestamp := time.Now().Format(jobTimeLayout)

	var resp struct {
		Data struct {
			UpdateLowStockProducts struct {
				Success  bool     `json:"success"`
				Message  string   `json:"message"`
				Errors   []string `json:"errors"`
				Products []struct {
					ID    string `json:"id"`
					Name  string `json:"name"`
					Stock int    `json:"stock"`
				} `json:"products"`
			} `json:"updateLowStockProducts"`
		} `json:"data"`
		Errors []gqlError `json:"errors"`
	}
	err := a.postGraphQL(lowStockMutation, nil, &resp)
	if err == nil && len(resp.Errors) > 0 {
		err = fmt.Errorf("%s", resp.Errors[0].Message)
	}
	if err != nil {
		_ = appendLogLine(a.appConfig.Jobs.LowStockErrorLog,
			fmt.Sprintf("%s GraphQL mutation failed: %s", timestamp, err.Error()))
		return
	}

	result := resp.Data.UpdateLowStockProducts
	if !result.Success {
		for _, msg := range result.Errors {
			_ = appendLogLine(a.appConfig.Jobs.LowStockErrorLog, timestamp+" "+msg)
		}
		return
	}

	_ = appendLogLine(a.appConfig.Jobs.LowStockLog, timestamp+" "+result.Message)
	for _, p := range result.Products {
		_ = appendLogLine(a.appConfig.Jobs.LowStockLog,
			fmt.Sprintf("- %s (Stock: %d)", p.Name, p.Stock))
	}
}

const orderRemindersQuery = `
query($dateSince: DateTime!) {
    allOrders(filter: {orderDateGte: $dateSince}) {
        edges {
            node {
                id
                customer {
                    email
                }
            }
        }
    }
}`

// SchedOrderRemindersTask logs one reminder line for every order placed
// inside the lookback window.
func (a *Application) SchedOrderRemindersTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	days := a.configManager.GetInt("crm", "ReminderDays")
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)

	var resp struct {
		Data struct {
			AllOrders struct {
				Edges []struct {
					Node struct {
						ID       string `json:"id"`
						Customer struct {
							Email string `json:"email"`
						} `json:"customer"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"allOrders"`
		} `json:"data"`
		Errors []gqlError `json:"errors"`
	}
	err := a.postGraphQL(orderRemindersQuery,
		map[string]interface{}{"dateSince": since.Format(time.RFC3339)}, &resp)
	if err == nil && len(resp.Errors) > 0 {
		err = fmt.Errorf("%s", resp.Errors[0].Message)
	}

	timestamp := time.Now().Format(reminderTimeLayout)
	if err != nil {
		_ = appendLogLine(a.appConfig.Jobs.ReminderLog,
			fmt.Sprintf("%s - Error during GraphQL query: %s", timestamp, err.Error()))
		return
	}

	for _, edge := range resp.Data.AllOrders.Edges {
		email := edge.Node.Customer.Email
		if email == "" {
			email = "no-email"
		}
		_ = appendLogLine(a.appConfig.Jobs.ReminderLog,
			fmt.Sprintf("%s - Reminder: Order ID %s for customer %s", timestamp, edge.Node.ID, email))
	}
	zap.S().Infof("order reminders processed: %d", len(resp.Data.AllOrders.Edges))
}
