package storage

import (
	"database/sql"
	"fmt"
)

// seedMerchant is one row of the shipped merchant dictionary.
type seedMerchant struct {
	key         string
	name        string
	category    string
	subcategory string
	aliases     string
	confidence  float64
	priority    int
}

var merchantSeed = []seedMerchant{
	{"ifood", "iFood", "Alimentação", "Delivery", "ifd", 0.95, 90},
	{"rappi", "Rappi", "Alimentação", "Delivery", "", 0.95, 90},
	{"uber eats", "Uber Eats", "Alimentação", "Delivery", "ubereats", 0.95, 90},
	{"mcdonalds", "McDonald's", "Alimentação", "Restaurante", "mc donalds,arcos dourados", 0.92, 80},
	{"burger king", "Burger King", "Alimentação", "Restaurante", "bk", 0.92, 80},
	{"subway", "Subway", "Alimentação", "Restaurante", "", 0.9, 80},
	{"starbucks", "Starbucks", "Alimentação", "Cafeteria", "", 0.9, 80},
	{"pao de acucar", "Pão de Açúcar", "Alimentação", "Supermercado", "gpa", 0.92, 80},
	{"carrefour", "Carrefour", "Alimentação", "Supermercado", "", 0.92, 80},
	{"extra", "Extra", "Alimentação", "Supermercado", "", 0.8, 60},
	{"assai", "Assaí", "Alimentação", "Supermercado", "assai atacadista", 0.92, 80},
	{"uber", "Uber", "Transporte", "Aplicativo", "uber trip,uber br", 0.93, 85},
	{"99app", "99", "Transporte", "Aplicativo", "99 tecnologia,99pop", 0.93, 85},
	{"posto shell", "Posto Shell", "Transporte", "Combustível", "shell", 0.92, 80},
	{"posto ipiranga", "Posto Ipiranga", "Transporte", "Combustível", "ipiranga", 0.92, 80},
	{"petrobras", "Petrobras", "Transporte", "Combustível", "br mania", 0.9, 75},
	{"localiza", "Localiza", "Transporte", "Aluguel de Carro", "", 0.9, 75},
	{"latam", "LATAM", "Transporte", "Passagens", "latam airlines", 0.9, 75},
	{"gol", "GOL", "Transporte", "Passagens", "gol linhas aereas", 0.85, 70},
	{"azul", "Azul", "Transporte", "Passagens", "azul linhas aereas", 0.85, 70},
	{"netflix", "Netflix", "Assinaturas", "Streaming", "", 0.95, 90},
	{"spotify", "Spotify", "Assinaturas", "Streaming", "", 0.95, 90},
	{"amazon prime", "Amazon Prime", "Assinaturas", "Streaming", "prime video", 0.93, 85},
	{"disney", "Disney+", "Assinaturas", "Streaming", "disney plus", 0.9, 80},
	{"globoplay", "Globoplay", "Assinaturas", "Streaming", "", 0.9, 80},
	{"amazon", "Amazon", "Compras", "E-commerce", "amazon br,amazon marketplace", 0.9, 75},
	{"mercado livre", "Mercado Livre", "Compras", "E-commerce", "mercadolivre,mercadopago", 0.9, 75},
	{"magazine luiza", "Magazine Luiza", "Compras", "E-commerce", "magalu", 0.9, 75},
	{"americanas", "Americanas", "Compras", "E-commerce", "lojas americanas", 0.9, 75},
	{"shopee", "Shopee", "Compras", "E-commerce", "", 0.9, 75},
	{"aliexpress", "AliExpress", "Compras", "E-commerce", "", 0.9, 75},
	{"casas bahia", "Casas Bahia", "Compras", "Varejo", "", 0.9, 75},
	{"renner", "Renner", "Compras", "Vestuário", "lojas renner", 0.9, 75},
	{"drogasil", "Drogasil", "Saúde", "Farmácia", "raia drogasil", 0.92, 80},
	{"drogaria sao paulo", "Drogaria São Paulo", "Saúde", "Farmácia", "", 0.9, 75},
	{"pacheco", "Drogarias Pacheco", "Saúde", "Farmácia", "", 0.88, 70},
	{"smart fit", "Smart Fit", "Saúde", "Academia", "smartfit", 0.92, 80},
	{"cinemark", "Cinemark", "Lazer", "Cinema", "", 0.9, 75},
	{"steam", "Steam", "Lazer", "Games", "steam games", 0.9, 75},
	{"udemy", "Udemy", "Educação", "Cursos", "", 0.9, 75},
	{"claro", "Claro", "Moradia", "Telefonia/Internet", "claro br", 0.88, 70},
	{"vivo", "Vivo", "Moradia", "Telefonia/Internet", "telefonica", 0.88, 70},
	{"tim", "TIM", "Moradia", "Telefonia/Internet", "", 0.85, 65},
	{"enel", "Enel", "Moradia", "Energia", "", 0.9, 75},
	{"sabesp", "Sabesp", "Moradia", "Água", "", 0.9, 75},
}

type seedBankingPattern struct {
	key         string
	context     string
	category    string
	subcategory string
	confidence  float64
	priority    int
}

var bankingPatternSeed = []seedBankingPattern{
	{"pix enviado", "transfer_out", "Transferências", "PIX", 0.85, 70},
	{"pix recebido", "transfer_in", "Transferências Recebidas", "PIX", 0.85, 70},
	{"ted enviada", "transfer_out", "Transferências", "TED", 0.85, 70},
	{"ted recebida", "transfer_in", "Transferências Recebidas", "TED", 0.85, 70},
	{"doc enviado", "transfer_out", "Transferências", "DOC", 0.8, 65},
	{"saque", "withdrawal", "Saques", "", 0.85, 70},
	{"pagamento boleto", "bill", "Outros", "Boletos", 0.75, 60},
	{"debito automatico", "bill", "Outros", "Débito Automático", 0.75, 60},
	{"resgate", "investment", "Rendimentos", "Resgate", 0.8, 65},
	{"aplicacao", "investment", "Outros", "Aplicação", 0.8, 65},
}

type seedKeyword struct {
	keyword     string
	kind        string
	category    string
	subcategory string
	confidence  float64
	priority    int
}

var keywordSeed = []seedKeyword{
	{"restaurante", "expense", "Alimentação", "Restaurante", 0.75, 50},
	{"lanchonete", "expense", "Alimentação", "Restaurante", 0.75, 50},
	{"padaria", "expense", "Alimentação", "Padaria", 0.75, 50},
	{"pizzaria", "expense", "Alimentação", "Restaurante", 0.75, 50},
	{"mercado", "expense", "Alimentação", "Supermercado", 0.7, 45},
	{"supermercado", "expense", "Alimentação", "Supermercado", 0.78, 55},
	{"acougue", "expense", "Alimentação", "Açougue", 0.72, 45},
	{"posto", "expense", "Transporte", "Combustível", 0.75, 50},
	{"combustivel", "expense", "Transporte", "Combustível", 0.78, 55},
	{"gasolina", "expense", "Transporte", "Combustível", 0.78, 55},
	{"estacionamento", "expense", "Transporte", "Estacionamento", 0.75, 50},
	{"pedagio", "expense", "Transporte", "Pedágio", 0.78, 55},
	{"farmacia", "expense", "Saúde", "Farmácia", 0.78, 55},
	{"drogaria", "expense", "Saúde", "Farmácia", 0.78, 55},
	{"clinica", "expense", "Saúde", "Consultas", 0.72, 45},
	{"hospital", "expense", "Saúde", "Consultas", 0.72, 45},
	{"laboratorio", "expense", "Saúde", "Exames", 0.7, 45},
	{"academia", "expense", "Saúde", "Academia", 0.75, 50},
	{"aluguel", "expense", "Moradia", "Aluguel", 0.78, 55},
	{"condominio", "expense", "Moradia", "Condomínio", 0.78, 55},
	{"energia", "expense", "Moradia", "Energia", 0.72, 45},
	{"internet", "expense", "Moradia", "Telefonia/Internet", 0.7, 45},
	{"escola", "expense", "Educação", "Mensalidade", 0.72, 45},
	{"faculdade", "expense", "Educação", "Mensalidade", 0.75, 50},
	{"curso", "expense", "Educação", "Cursos", 0.68, 40},
	{"livraria", "expense", "Educação", "Livros", 0.72, 45},
	{"cinema", "expense", "Lazer", "Cinema", 0.75, 50},
	{"teatro", "expense", "Lazer", "Shows", 0.72, 45},
	{"hotel", "expense", "Lazer", "Viagens", 0.72, 45},
	{"salario", "income", "Salário", "", 0.85, 60},
	{"pagamento salario", "income", "Salário", "", 0.85, 60},
	{"rendimento", "income", "Rendimentos", "", 0.8, 55},
	{"dividendos", "income", "Rendimentos", "Dividendos", 0.8, 55},
	{"juros recebidos", "income", "Rendimentos", "Juros", 0.78, 50},
}

// seedDictionary loads the shipped merchant, banking-pattern and keyword
// dictionaries. Keys are stored lowercased; matching happens against
// lowercased descriptions.
func seedDictionary(tx *sql.Tx) error {
	for _, m := range merchantSeed {
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO merchants
				(merchant_key, entity_name, category, subcategory, aliases, confidence_modifier, priority)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, m.key, m.name, m.category, m.subcategory, m.aliases, m.confidence, m.priority); err != nil {
			return fmt.Errorf("failed to seed merchant %q: %w", m.key, err)
		}
	}

	for _, p := range bankingPatternSeed {
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO banking_patterns
				(pattern_key, context, category, subcategory, confidence_modifier, priority)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.key, p.context, p.category, p.subcategory, p.confidence, p.priority); err != nil {
			return fmt.Errorf("failed to seed banking pattern %q: %w", p.key, err)
		}
	}

	for _, k := range keywordSeed {
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO keywords
				(keyword, kind, category, subcategory, confidence_modifier, priority)
			VALUES (?, ?, ?, ?, ?, ?)
		`, k.keyword, k.kind, k.category, k.subcategory, k.confidence, k.priority); err != nil {
			return fmt.Errorf("failed to seed keyword %q: %w", k.keyword, err)
		}
	}

	return nil
}
