package model

// Overview is the admin dashboard aggregate.
type Overview struct {
	TasksByStatus map[TaskStatus]int `json:"tasks_by_status"`
	OverdueTasks  int                `json:"overdue_tasks"`
	DueThisWeek   int                `json:"due_this_week"`
	Apartments    int                `json:"apartments"`
	Areas         int                `json:"areas"`
	Contractors   int                `json:"contractors"`
	Assets        int                `json:"assets"`
	AssetsDue     int                `json:"assets_due"`
	Users         int                `json:"users"`
	Expenses      ExpenseSummary     `json:"expenses"`
	UpcomingTasks []*Task            `json:"upcoming_tasks"`
}
