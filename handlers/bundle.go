package handlers

// HandlerBundle aggregates all HTTP handlers so route registration takes a
// single dependency.
type HandlerBundle struct {
	Employee     *EmployeeHandler
	Notification *NotificationHandler
	Leave        *LeaveHandler
	Expense      *ExpenseHandler
	EmailAction  *EmailActionHandler
	Admin        *AdminHandler
}
