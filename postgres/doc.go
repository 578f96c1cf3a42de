/*
Package postgres manages the database connection of the accounts service.

Connect opens the connection and runs every Migration not yet recorded in the migrations table.
When the database is a target for tests, the public schema is dropped first.

DB wraps *gorm.DB with a small query builder whose finisher methods translate driver errors
into the sentinel errors of package accounts.
UserStore implements accounts.UserStore on top of DB.
*/
package postgres
