package data

const appSchema = `
CREATE TABLE IF NOT EXISTS Users (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Email TEXT NOT NULL UNIQUE,
    DisplayName TEXT NOT NULL,
    PhotoUrl TEXT,
    Role TEXT NOT NULL DEFAULT 'staff',
    DepartmentId INTEGER,
    PasswordHash TEXT NOT NULL,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL,
    FOREIGN KEY (DepartmentId) REFERENCES Departments(Id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS Departments (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Name TEXT NOT NULL UNIQUE,
    Description TEXT,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS Projects (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Name TEXT NOT NULL,
    Description TEXT,
    DepartmentId INTEGER,
    Phase TEXT NOT NULL DEFAULT 'meetings',
    Status TEXT NOT NULL DEFAULT 'active',
    CreatedBy INTEGER NOT NULL,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL,
    FOREIGN KEY (DepartmentId) REFERENCES Departments(Id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS Tasks (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    ProjectId INTEGER NOT NULL,
    Phase TEXT NOT NULL,
    Title TEXT NOT NULL,
    Description TEXT,
    Status TEXT NOT NULL DEFAULT 'todo',
    AssigneeId INTEGER,
    DueDate TEXT,
    Position INTEGER NOT NULL DEFAULT 0,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL,
    CompletedAt DATETIME,
    FOREIGN KEY (ProjectId) REFERENCES Projects(Id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS ChecklistItems (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    TaskId INTEGER NOT NULL,
    Title TEXT NOT NULL,
    IsDone BOOLEAN NOT NULL DEFAULT 0,
    Position INTEGER NOT NULL DEFAULT 0,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL,
    FOREIGN KEY (TaskId) REFERENCES Tasks(Id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS Notes (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Kind TEXT NOT NULL,
    DepartmentId INTEGER,
    Title TEXT NOT NULL,
    Content TEXT,
    AuthorId INTEGER NOT NULL,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL,
    FOREIGN KEY (DepartmentId) REFERENCES Departments(Id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS Meetings (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    ProjectId INTEGER,
    Title TEXT NOT NULL,
    Date TEXT NOT NULL,
    Time TEXT NOT NULL,
    Location TEXT,
    Minutes TEXT,
    AttachmentUrl TEXT,
    CreatedBy INTEGER NOT NULL,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL,
    FOREIGN KEY (ProjectId) REFERENCES Projects(Id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS SystemTaskTemplates (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    DepartmentId INTEGER NOT NULL,
    Title TEXT NOT NULL,
    Description TEXT,
    Frequency TEXT NOT NULL,
    DaysOfWeekJson TEXT,
    DayOfWeek INTEGER,
    DayOfMonth INTEGER,
    MonthOfYear INTEGER,
    IsActive BOOLEAN NOT NULL DEFAULT 1,
    CreatedBy INTEGER NOT NULL,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL,
    FOREIGN KEY (DepartmentId) REFERENCES Departments(Id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS SystemTaskCompletions (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    TemplateId INTEGER NOT NULL,
    Date TEXT NOT NULL,
    CompletedBy INTEGER NOT NULL,
    CompletedAt DATETIME NOT NULL,
    UNIQUE (TemplateId, Date),
    FOREIGN KEY (TemplateId) REFERENCES SystemTaskTemplates(Id) ON DELETE CASCADE
);
`

// GetSchema returns the full application schema.
func GetSchema() string {
	return appSchema
}
