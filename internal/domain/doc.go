// Package domain defines the core banking entities and their validation
// rules: customers, bank accounts, bank cards and the ownership relation
// joining customers to accounts.
package domain
