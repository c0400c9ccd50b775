package similarity

import "github.com/lucre-fin/lucre/internal/model"

// SeedExamples returns the shipped curated training corpus. User
// corrections are appended on top of these at runtime.
func SeedExamples() []Example {
	return []Example{
		{Description: "ifood pedido", Category: "Alimentação", Subcategory: "Delivery", Kind: model.KindExpense},
		{Description: "restaurante almoço", Category: "Alimentação", Subcategory: "Restaurante", Kind: model.KindExpense},
		{Description: "padaria pao quente", Category: "Alimentação", Subcategory: "Padaria", Kind: model.KindExpense},
		{Description: "supermercado compra mensal", Category: "Alimentação", Subcategory: "Supermercado", Kind: model.KindExpense},
		{Description: "mercado municipal", Category: "Alimentação", Subcategory: "Supermercado", Kind: model.KindExpense},
		{Description: "uber corrida", Category: "Transporte", Subcategory: "Aplicativo", Kind: model.KindExpense},
		{Description: "posto gasolina abastecimento", Category: "Transporte", Subcategory: "Combustível", Kind: model.KindExpense},
		{Description: "estacionamento shopping", Category: "Transporte", Subcategory: "Estacionamento", Kind: model.KindExpense},
		{Description: "pedagio rodovia", Category: "Transporte", Subcategory: "Pedágio", Kind: model.KindExpense},
		{Description: "recarga bilhete unico", Category: "Transporte", Subcategory: "Transporte Público", Kind: model.KindExpense},
		{Description: "farmacia remedio", Category: "Saúde", Subcategory: "Farmácia", Kind: model.KindExpense},
		{Description: "consulta medica clinica", Category: "Saúde", Subcategory: "Consultas", Kind: model.KindExpense},
		{Description: "academia mensalidade", Category: "Saúde", Subcategory: "Academia", Kind: model.KindExpense},
		{Description: "aluguel apartamento", Category: "Moradia", Subcategory: "Aluguel", Kind: model.KindExpense},
		{Description: "condominio edificio", Category: "Moradia", Subcategory: "Condomínio", Kind: model.KindExpense},
		{Description: "conta energia eletrica", Category: "Moradia", Subcategory: "Energia", Kind: model.KindExpense},
		{Description: "conta agua saneamento", Category: "Moradia", Subcategory: "Água", Kind: model.KindExpense},
		{Description: "internet banda larga", Category: "Moradia", Subcategory: "Telefonia/Internet", Kind: model.KindExpense},
		{Description: "netflix assinatura mensal", Category: "Assinaturas", Subcategory: "Streaming", Kind: model.KindExpense},
		{Description: "spotify premium", Category: "Assinaturas", Subcategory: "Streaming", Kind: model.KindExpense},
		{Description: "cinema ingresso", Category: "Lazer", Subcategory: "Cinema", Kind: model.KindExpense},
		{Description: "hotel diaria viagem", Category: "Lazer", Subcategory: "Viagens", Kind: model.KindExpense},
		{Description: "livraria livros", Category: "Educação", Subcategory: "Livros", Kind: model.KindExpense},
		{Description: "faculdade mensalidade", Category: "Educação", Subcategory: "Mensalidade", Kind: model.KindExpense},
		{Description: "curso online", Category: "Educação", Subcategory: "Cursos", Kind: model.KindExpense},
		{Description: "loja roupas vestuario", Category: "Compras", Subcategory: "Vestuário", Kind: model.KindExpense},
		{Description: "compra online marketplace", Category: "Compras", Subcategory: "E-commerce", Kind: model.KindExpense},
		{Description: "tarifa manutencao conta", Category: "Tarifas Bancárias / Juros / Impostos / Taxas", Kind: model.KindExpense},
		{Description: "iof transacao internacional", Category: "Tarifas Bancárias / Juros / Impostos / Taxas", Kind: model.KindExpense},
		{Description: "anuidade cartao credito", Category: "Tarifas Bancárias / Juros / Impostos / Taxas", Kind: model.KindExpense},
		{Description: "pagamento salario empresa", Category: "Salário", Kind: model.KindIncome},
		{Description: "rendimento poupanca", Category: "Rendimentos", Kind: model.KindIncome},
		{Description: "dividendos acoes", Category: "Rendimentos", Subcategory: "Dividendos", Kind: model.KindIncome},
		{Description: "pix recebido amigo", Category: "Transferências Recebidas", Subcategory: "PIX", Kind: model.KindIncome},
	}
}
